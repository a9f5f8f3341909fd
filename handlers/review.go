package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/review"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
)

// HandleReviewSubmission creates a pending review for a store. Reviews only
// appear publicly once an admin approves them.
func HandleReviewSubmission(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	storeID, err := ParseIntParam(c, "storeID")
	if err != nil {
		return err
	}
	if _, err := store.GetStore(storeID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Store not found")
	}

	rating, err := ParseFormInt(c, "rating")
	if err != nil {
		return ValidationErrorResponse(c, "Please choose a rating from 1 to 5.")
	}
	comment := c.FormValue("comment")
	if comment == "" {
		return ValidationErrorResponse(c, "A comment is required.")
	}

	if _, err := review.AddReview(storeID, userID, rating, comment, "[]"); err != nil {
		log.Printf("[review] failed to add review for store %d: %v", storeID, err)
		return ValidationErrorResponse(c, "Please choose a rating from 1 to 5.")
	}

	return render(c, ui.SuccessMessage("Review submitted. It will appear after moderation.", ""))
}

// HandleMyReviews renders the logged-in user's reviews, all statuses.
func HandleMyReviews(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)

	reviews, err := review.GetByUser(userID)
	if err != nil {
		log.Printf("[review] failed to load reviews for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load reviews")
	}

	return render(c, ui.MyReviewsPage(userID, userName, c.Path(), reviews))
}

// HandleReviewDelete removes the user's own review.
func HandleReviewDelete(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	reviewID, err := ParseIntParam(c, "reviewID")
	if err != nil {
		return err
	}

	if err := review.Delete(reviewID, userID); err != nil {
		log.Printf("[review] failed to delete review %d for user %d: %v", reviewID, userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete review")
	}
	return render(c, ui.EmptyResponse())
}
