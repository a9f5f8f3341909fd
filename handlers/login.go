package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/jwt"
	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/password"
	"github.com/refill-spot/site/ui"
	"github.com/refill-spot/site/user"
)

func logoutUser(c *fiber.Ctx) {
	cookie.ClearJWT(c)
}

// loginUser logs in a user by generating a JWT and setting it in the cookie
func loginUser(c *fiber.Ctx, u *user.User) error {
	token, err := jwt.GenerateToken(u)
	if err != nil {
		log.Printf("[AUTH] JWT generation error: %v", err)
		return fmt.Errorf("failed to generate JWT: %w", err)
	}

	cookie.SetJWT(c, token)
	return nil
}

func redirectToLogin(c *fiber.Ctx) error {
	// HTMX requests need the redirect as a header, not a 3xx body swap
	if c.Get("HX-Request") != "" {
		c.Set("HX-Redirect", "/login")
		return c.Status(fiber.StatusSeeOther).SendString("")
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func HandleLogin(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	return render(c, ui.LoginPage(userID, userName, c.Path()))
}

func HandleLogout(c *fiber.Ctx) error {
	logoutUser(c)
	return redirectToLogin(c)
}

func HandleLoginSubmission(c *fiber.Ctx) error {
	email := c.FormValue("email")
	userPassword := c.FormValue("password")

	log.Printf("[AUTH] Login attempt: email=%s", email)

	u, err := user.GetUserByEmail(email)
	if err != nil {
		log.Printf("[AUTH] Login failed: user not found: %s", email)
		return ValidationErrorResponse(c, "Invalid email or password")
	}

	if !password.VerifyPassword(userPassword, u.PasswordHash, u.PasswordSalt) {
		log.Printf("[AUTH] Login failed: bad password for email=%s", email)
		return ValidationErrorResponse(c, "Invalid email or password")
	}

	if err := loginUser(c, &u); err != nil {
		log.Printf("[AUTH] Login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error, unable to log you in.")
	}

	log.Printf("[AUTH] Login successful: userID=%d, email=%s", u.ID, email)
	return render(c, ui.SuccessMessage("Login successful", "/"))
}
