package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"survey-board-backend/src/models"
	"survey-board-backend/src/utils"
)

const requesterKey = "requester"

func parseBearer(c *fiber.Ctx) (*utils.JWTClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fiber.ErrUnauthorized
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	return utils.ParseJWT(tokenStr)
}

// AuthJWT บังคับต้องมี identity ใช้กับ endpoint ที่เขียนข้อมูล
func AuthJWT(c *fiber.Ctx) error {
	claims, err := parseBearer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	userID := claims.UserID
	c.Locals(requesterKey, models.Requester{UserID: &userID, RoleLevel: claims.RoleLevel})
	return c.Next()
}

// OptionalJWT ใช้กับ endpoint อ่านอย่างเดียว
// ไม่มีโทเคนหรือโทเคนเสียถือเป็นผู้ใช้นิรนาม role ต่ำสุด ไม่ใช่ 401
func OptionalJWT(c *fiber.Ctx) error {
	claims, err := parseBearer(c)
	if err != nil {
		c.Locals(requesterKey, models.Anonymous())
		return c.Next()
	}

	userID := claims.UserID
	c.Locals(requesterKey, models.Requester{UserID: &userID, RoleLevel: claims.RoleLevel})
	return c.Next()
}

// GetRequester ดึง identity ที่ middleware เก็บไว้
func GetRequester(c *fiber.Ctx) models.Requester {
	if requester, ok := c.Locals(requesterKey).(models.Requester); ok {
		return requester
	}
	return models.Anonymous()
}
