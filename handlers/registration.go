package handlers

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/password"
	"github.com/refill-spot/site/ui"
	"github.com/refill-spot/site/user"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// HandleRegistration shows the registration form.
func HandleRegistration(c *fiber.Ctx) error {
	// A logged-in user starting a registration is starting over
	logoutUser(c)
	return render(c, ui.RegisterPage(0, "", c.Path()))
}

func validatePasswordStrength(p string) error {
	if len(p) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	return nil
}

// HandleRegistrationSubmission validates the form and creates the account.
func HandleRegistrationSubmission(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	userPassword := c.FormValue("password")
	password2 := c.FormValue("password2")

	if name == "" {
		return ValidationErrorResponse(c, "Name is required.")
	}
	if !emailPattern.MatchString(email) {
		return ValidationErrorResponse(c, "A valid email address is required.")
	}

	if err := ValidatePasswordConfirmation(userPassword, password2); err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	if err := validatePasswordStrength(userPassword); err != nil {
		return ValidationErrorResponse(c, err.Error())
	}

	if c.FormValue("terms") != "accepted" {
		return ValidationErrorResponse(c, "You must accept the Terms of Service and Privacy Policy to continue.")
	}

	// Do not reveal whether the email is taken
	if _, err := user.GetUserByEmail(email); err == nil {
		return ValidationErrorResponse(c,
			"Unable to complete registration with these credentials. Please try different information.")
	}

	hash, salt, err := password.HashPassword(userPassword)
	if err != nil {
		log.Printf("[REGISTRATION] Failed to hash password: %v", err)
		return ValidationErrorResponse(c, "Server error, unable to create your account.")
	}

	userID, err := user.CreateUser(name, email, hash, salt)
	if err != nil {
		log.Printf("[REGISTRATION] Failed to create user: %v", err)
		return ValidationErrorResponse(c, "Unable to create account. Please try again.")
	}

	u, err := user.GetUser(userID)
	if err != nil {
		log.Printf("[REGISTRATION] Failed to get newly created user: %v", err)
		return ValidationErrorResponse(c, "Registration completed but unable to log you in. Please log in manually.")
	}

	if err := loginUser(c, &u); err != nil {
		log.Printf("[REGISTRATION] Failed to log in: %v", err)
		return ValidationErrorResponse(c, "Registration completed but unable to log you in. Please log in manually.")
	}

	log.Printf("[REGISTRATION] Registration successful: userID=%d, email=%s", userID, email)
	return render(c, ui.SuccessMessage("Registration successful", "/"))
}
