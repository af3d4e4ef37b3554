package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/streamhive/accounts-backend/internal/apperrors"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIErrorResponse is the uniform error envelope. Errors never carry
// internal detail, only the client-safe message.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// respondError maps an error to its HTTP status and writes the error
// envelope.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, APIErrorResponse{
		StatusCode: status,
		Message:    apperrors.PublicMessage(err),
		Success:    false,
		Errors:     []string{},
	})
}

// respondBindingError writes a 400 carrying per-field validation messages
// when the bind failure has them, otherwise just the fallback message.
func respondBindingError(c *gin.Context, err error, fallback string) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		respondError(c, apperrors.NewBadRequest(fallback))
		return
	}
	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fmt.Sprintf("field %s failed on the %q rule", fieldErr.Field(), fieldErr.Tag()))
	}
	c.JSON(http.StatusBadRequest, APIErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    fallback,
		Success:    false,
		Errors:     fields,
	})
}
