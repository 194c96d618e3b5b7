package utils

import "github.com/labstack/echo/v4"

// Envelope is the uniform response shape every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Payload interface{} `json:"payload"`
}

// Respond writes the standard {success, message, payload} envelope with
// the given HTTP status.
func Respond(c echo.Context, status int, success bool, message string, payload interface{}) error {
	return c.JSON(status, Envelope{
		Success: success,
		Message: message,
		Payload: payload,
	})
}

// OK is shorthand for a successful 200 envelope.
func OK(c echo.Context, message string, payload interface{}) error {
	return Respond(c, 200, true, message, payload)
}

// Fail is shorthand for an error envelope with a nil payload.
func Fail(c echo.Context, status int, message string) error {
	return Respond(c, status, false, message, nil)
}

// FailWith is Fail with diagnostic detail attached as the payload, used
// when an unexpected collaborator failure should keep its original
// message for debugging.
func FailWith(c echo.Context, status int, message string, detail string) error {
	return Respond(c, status, false, message, detail)
}
