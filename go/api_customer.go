package cinemaserver

import (
	"fmt"

	"github.com/gin-gonic/gin"

	cinemahttp "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/http/mapper"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// CustomerAPI wires HTTP transport with the customer use cases.
type CustomerAPI struct {
	service ports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service ports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Get /customers
// List every customer
func (api *CustomerAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromCustomers(customers))
}

// Post /customers
// Register a customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload cinemahttp.CustomerRequest
	if !bindJSON(c, &payload) {
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), cinemahttp.ToCustomerInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.Created(c, fmt.Sprintf("/customers/%d", customer.ID), cinemahttp.FromCustomer(customer))
}

// Get /customers/:id
// Find customer by ID
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromCustomer(customer))
}

// Put /customers/:id
// Update the fields present in the body
func (api *CustomerAPI) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cinemahttp.CustomerPatchRequest
	if !bindJSON(c, &payload) {
		return
	}
	customer, err := api.service.UpdateCustomer(c.Request.Context(), id, cinemahttp.ToCustomerPatch(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromCustomer(customer))
}

// Delete /customers/:id
// Delete a customer and their tickets
func (api *CustomerAPI) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := api.service.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromCustomer(customer))
}
