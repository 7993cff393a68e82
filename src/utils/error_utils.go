// error_utils.go
package utils

import (
	"survey-board-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// WriteError แปลง error จาก service เป็น JSON response
// AppError ใช้ status ของตัวเอง นอกนั้นถือเป็น 500
func WriteError(c *fiber.Ctx, err error) error {
	if appErr, ok := AsAppError(err); ok {
		return HandleError(c, appErr.Status, appErr.Message)
	}
	return HandleError(c, fiber.StatusInternalServerError, err.Error())
}
