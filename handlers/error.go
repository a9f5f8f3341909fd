package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/ui"
)

// CustomErrorHandler renders application errors as a full error page.
func CustomErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	userID := local.GetUserID(ctx)
	userName := local.GetUserName(ctx)

	ctx.Status(code)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return ui.ErrorPage(code, err.Error(), userID, userName).Render(ctx.Response().BodyWriter())
}
