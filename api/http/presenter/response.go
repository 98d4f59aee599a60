package presenter

import (
	"github.com/gofiber/fiber/v2"

	"jobtion/pkg/fault"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Error: message})
}

// Fault maps a pipeline error onto the 400/500 split and renders its
// user-facing message.
func Fault(c *fiber.Ctx, err error) error {
	return Error(c, fault.HTTPStatus(err), err.Error())
}
