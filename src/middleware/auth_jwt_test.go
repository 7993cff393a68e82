package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-board-backend/src/models"
	"survey-board-backend/src/utils"
)

func requesterEcho(t *testing.T, captured *models.Requester) fiber.Handler {
	t.Helper()
	return func(c *fiber.Ctx) error {
		*captured = GetRequester(c)
		return c.SendStatus(fiber.StatusOK)
	}
}

func TestOptionalJWT(t *testing.T) {
	var requester models.Requester
	app := fiber.New()
	app.Get("/", OptionalJWT, requesterEcho(t, &requester))

	t.Run("NoTokenIsAnonymous", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, requester.UserID)
		assert.Equal(t, models.AnonymousRoleLevel, requester.RoleLevel)
	})

	t.Run("GarbageTokenIsAnonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, requester.UserID)
	})

	t.Run("ValidTokenResolvesIdentity", func(t *testing.T) {
		token, err := utils.GenerateJWT("u1", 5)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotNil(t, requester.UserID)
		assert.Equal(t, "u1", *requester.UserID)
		assert.Equal(t, 5, requester.RoleLevel)
	})
}

func TestAuthJWT(t *testing.T) {
	var requester models.Requester
	app := fiber.New()
	app.Post("/", AuthJWT, requesterEcho(t, &requester))

	t.Run("NoTokenRejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ValidTokenAccepted", func(t *testing.T) {
		token, err := utils.GenerateJWT("admin-1", 100)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotNil(t, requester.UserID)
		assert.Equal(t, "admin-1", *requester.UserID)
		assert.Equal(t, 100, requester.RoleLevel)
	})
}
