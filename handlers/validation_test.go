package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordConfirmation(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		expectError  bool
	}{
		{"matching passwords", "secret123", "secret123", false},
		{"mismatched passwords", "secret123", "secret124", true},
		{"both empty", "", "", false},
		{"case sensitive", "Secret123", "secret123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordConfirmation(tt.password, tt.confirmation)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	app := fiber.New()

	var got int
	var gotErr error
	app.Get("/store/:storeID", func(c *fiber.Ctx) error {
		got, gotErr = ParseIntParam(c, "storeID")
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/store/42", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.NoError(t, gotErr)
	assert.Equal(t, 42, got)

	resp, err = app.Test(httptest.NewRequest("GET", "/store/abc", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Error(t, gotErr)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, validatePasswordStrength("short"))
	assert.NoError(t, validatePasswordStrength("longenough"))
}
