package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/ui"
)

// HandleTermsOfService displays the Terms of Service page
func HandleTermsOfService(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	return render(c, ui.TermsOfServicePage(userID, userName, c.Path()))
}

// HandlePrivacyPolicy displays the Privacy Policy page
func HandlePrivacyPolicy(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	return render(c, ui.PrivacyPolicyPage(userID, userName, c.Path()))
}

// HandleAbout displays the About page
func HandleAbout(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	return render(c, ui.AboutPage(userID, userName, c.Path()))
}
