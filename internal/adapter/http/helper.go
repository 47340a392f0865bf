package http

import (
	"retail-backoffice/internal/apperr"
	"retail-backoffice/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ---- helpers ----

// ErrorBody is the machine-readable error envelope every failed call returns.
type ErrorBody struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondError maps the error taxonomy to a status code. The kind decides the
// status; message text is never inspected. Internal detail stays in the log.
func respondError(c echo.Context, err error) error {
	e := apperr.From(err)
	if e.Kind() == apperr.KindSystem {
		logger.FromContext(c).Error("internal error", zap.Error(err))
	}
	return c.JSON(e.HTTPStatus(), errorResponse{Error: ErrorBody{
		Kind:    string(e.Kind()),
		Message: e.Message(),
	}})
}

func respondValidation(c echo.Context, err error) error {
	return c.JSON(422, errorResponse{Error: ErrorBody{
		Kind:    string(apperr.KindValidation),
		Message: "validation failed",
		Details: ToFieldErrors(err),
	}})
}

// tenantID returns the tenant scope set by the auth middleware. A missing
// tenant context is an error, never an implicit all-tenants query.
func tenantID(c echo.Context) (string, error) {
	v, ok := c.Get("tenant_id").(string)
	if !ok || v == "" {
		return "", apperr.Authorization("missing tenant context")
	}
	return v, nil
}

func userID(c echo.Context) string {
	v, _ := c.Get("user_id").(string)
	return v
}
