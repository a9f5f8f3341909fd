package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/jwt"
	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/user"
)

// JWTMiddleware validates the JWT cookie and sets the user in the context.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := cookie.GetJWT(c)
	if tokenString == "" {
		local.SetUserID(c, 0)
		local.SetUserName(c, "")
		return c.Next()
	}

	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		cookie.ClearJWT(c)
		local.SetUserID(c, 0)
		local.SetUserName(c, "")
		return c.Next()
	}

	local.SetUserID(c, jwt.GetUserID(claims))
	local.SetUserName(c, jwt.GetUserName(claims))
	return c.Next()
}

// AuthRequired requires a logged-in, non-archived user.
func AuthRequired(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	if userID == 0 {
		return redirectToLogin(c)
	}

	u, err := user.GetUser(userID)
	if err != nil || u.IsArchived() {
		cookie.ClearJWT(c)
		local.SetUserID(c, 0)
		local.SetUserName(c, "")
		return redirectToLogin(c)
	}

	return c.Next()
}

// AdminRequired requires a logged-in admin.
func AdminRequired(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}

	u, err := user.GetUser(userID)
	if err != nil || u.IsArchived() {
		cookie.ClearJWT(c)
		local.SetUserID(c, 0)
		local.SetUserName(c, "")
		return c.Status(fiber.StatusUnauthorized).SendString("User not found")
	}

	if !u.IsAdmin {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	return c.Next()
}
