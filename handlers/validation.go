package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/ui"
)

// ValidateRequired validates that a required form field is not empty
func ValidateRequired(c *fiber.Ctx, fieldName, displayName string) (string, error) {
	value := c.FormValue(fieldName)
	if value == "" {
		return "", fmt.Errorf("%s is required", displayName)
	}
	return value, nil
}

// ParseIntParam parses an integer parameter from the URL with consistent error handling
func ParseIntParam(c *fiber.Ctx, paramName string) (int, error) {
	value, err := c.ParamsInt(paramName)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid parameter: "+paramName)
	}
	return value, nil
}

// ParseFormInt parses a form value as an integer with consistent error handling
func ParseFormInt(c *fiber.Ctx, fieldName string) (int, error) {
	value, err := strconv.Atoi(c.FormValue(fieldName))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid integer value for field: "+fieldName)
	}
	return value, nil
}

// ParseFormFloat parses a form value as a float with consistent error handling
func ParseFormFloat(c *fiber.Ctx, fieldName string) (float64, error) {
	value, err := strconv.ParseFloat(c.FormValue(fieldName), 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid number for field: "+fieldName)
	}
	return value, nil
}

// ValidatePasswordConfirmation validates that password and confirmation match
func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("Passwords do not match")
	}
	return nil
}

// ValidationErrorResponse returns a validation error response
func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return render(c, ui.ValidationError(message))
}

// ValidationErrorResponseWithStatus returns a validation error response with custom status code
func ValidationErrorResponseWithStatus(c *fiber.Ctx, message string, statusCode int) error {
	c.Response().SetStatusCode(statusCode)
	return render(c, ui.ValidationError(message))
}
