package handlers

import (
	"errors"
	"log"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain"
	"tripplanner/internal/http/middleware"
)

// RespondDomainError maps domain errors to HTTP responses. Extraction
// failures carry the raw model output as rawResponse.
func RespondDomainError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)
	body := gin.H{"request_id": reqID}
	status := http.StatusInternalServerError

	var ve domain.ValidationError
	var se domain.SchemaError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
		body["code"] = "validation_error"
		body["message"] = err.Error()
		if errors.As(err, &ve) && ve.Field != "" {
			body["field"] = ve.Field
		}
	case domain.IsUnauthorized(err):
		status = http.StatusUnauthorized
		body["code"] = "unauthorized"
		body["message"] = err.Error()
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		body["code"] = "not_found"
		body["message"] = capitalize(err.Error())
	case domain.IsConflict(err):
		status = http.StatusConflict
		body["code"] = "conflict"
		body["message"] = err.Error()
	case domain.IsTransport(err):
		status = http.StatusBadGateway
		body["code"] = "generation_failed"
		body["message"] = "Failed to generate content"
	case domain.IsUnparsable(err):
		status = http.StatusBadGateway
		body["code"] = "unparsable_response"
		body["message"] = "Failed to parse AI response"
	case domain.IsSchemaMismatch(err):
		status = http.StatusBadGateway
		body["code"] = "schema_mismatch"
		body["message"] = "AI response has an unexpected structure"
		if errors.As(err, &se) && se.Field != "" {
			body["field"] = se.Field
		}
	case domain.IsPersistence(err):
		body["code"] = "internal_error"
		body["message"] = "Server error"
	default:
		body["code"] = "internal_error"
		body["message"] = "Server error"
	}

	if raw, ok := domain.RawResponse(err); ok {
		body["rawResponse"] = raw
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] request_id=%s path=%s status=%d err=%v", reqID, c.Request.URL.Path, status, err)
	}
	c.JSON(status, body)
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
