// apperror.go
package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError คือ error ที่รู้ HTTP status ของตัวเอง
// services คืน AppError แล้วให้ controller แปลงเป็น response เดียวกันทุกที่
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func BadRequest(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

// InternalConfig ใช้เมื่อค่า config ที่ต้องมี (เช่น admin role level) หายไป
func InternalConfig(message string) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message}
}

// AsAppError unwraps err into an AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
