package cinemaserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/shared/response"
)

var kindStatus = map[application.Kind]int{
	application.KindNotFound:       http.StatusNotFound,
	application.KindInvalidPayload: http.StatusBadRequest,
	application.KindConflict:       http.StatusBadRequest,
	application.KindUnauthorized:   http.StatusUnauthorized,
	application.KindForbidden:      http.StatusForbidden,
	application.KindStorage:        http.StatusInternalServerError,
}

// failureProblem maps a classified service failure to its status and message.
func failureProblem(err error) (response.Problem, bool) {
	var failure *application.Failure
	if !errors.As(err, &failure) {
		return response.Problem{}, false
	}
	status, ok := kindStatus[failure.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return response.Problem{Status: status, Message: failure.Error()}, true
}

var responder = response.NewResponder(failureProblem)

// respondServiceError writes the error envelope for a service failure.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

// respondBadRequest rejects a request before it reaches the service.
func respondBadRequest(c *gin.Context, message string) {
	responder.BadRequest(c, message)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, fmt.Sprintf("Invalid %s '%s'.", name, raw))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		respondBadRequest(c, "Malformed request body: "+err.Error())
		return false
	}
	return true
}
