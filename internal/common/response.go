package common

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
	RequestID string     `json:"requestId,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendSuccess writes the success envelope with the request id assigned by the
// RequestID middleware.
func SendSuccess(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	})
}

// SendError maps err onto the error envelope. Non-AppError failures are never
// exposed with internal detail; they collapse to a generic server error.
func SendError(c echo.Context, err error) error {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = &AppError{Code: "SERVER_ERROR", Message: "Internal server error", Status: http.StatusInternalServerError}
	}
	return c.JSON(appErr.Status, &Response{
		Success:   false,
		Error:     &ErrorBody{Code: appErr.Code, Message: appErr.Message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	})
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
