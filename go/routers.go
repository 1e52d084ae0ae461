package cinemaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router with the default gin middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Middleware must be
// attached to the engine before this is called.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the CustomerAPI part of the API
	CustomerAPI CustomerAPI
	// Routes for the MovieAPI part of the API
	MovieAPI MovieAPI
	// Routes for the BookingAPI part of the API
	BookingAPI BookingAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListCustomers", http.MethodGet, "/customers", handleFunctions.CustomerAPI.ListCustomers},
		{"CreateCustomer", http.MethodPost, "/customers", handleFunctions.CustomerAPI.CreateCustomer},
		{"GetCustomer", http.MethodGet, "/customers/:id", handleFunctions.CustomerAPI.GetCustomer},
		{"UpdateCustomer", http.MethodPut, "/customers/:id", handleFunctions.CustomerAPI.UpdateCustomer},
		{"DeleteCustomer", http.MethodDelete, "/customers/:id", handleFunctions.CustomerAPI.DeleteCustomer},
		{"BookTicket", http.MethodPost, "/customers/:id/screenings/:screeningId", handleFunctions.BookingAPI.BookTicket},
		{"ListTickets", http.MethodGet, "/customers/:id/screenings/:screeningId", handleFunctions.BookingAPI.ListTickets},
		{"ListMovies", http.MethodGet, "/movies", handleFunctions.MovieAPI.ListMovies},
		{"CreateMovie", http.MethodPost, "/movies", handleFunctions.MovieAPI.CreateMovie},
		{"GetMovie", http.MethodGet, "/movies/:id", handleFunctions.MovieAPI.GetMovie},
		{"UpdateMovie", http.MethodPut, "/movies/:id", handleFunctions.MovieAPI.UpdateMovie},
		{"DeleteMovie", http.MethodDelete, "/movies/:id", handleFunctions.MovieAPI.DeleteMovie},
		{"ListScreenings", http.MethodGet, "/movies/:id/screenings", handleFunctions.MovieAPI.ListScreenings},
		{"CreateScreening", http.MethodPost, "/movies/:id/screenings", handleFunctions.MovieAPI.CreateScreening},
		{"GetScreening", http.MethodGet, "/movies/:id/screenings/:screeningId", handleFunctions.MovieAPI.GetScreening},
	}
}
