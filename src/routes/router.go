package routes

import (
	"github.com/gofiber/fiber/v2"

	"survey-board-backend/src/controllers"
)

// InitRoutes รวม routes จากแต่ละ module
func InitRoutes(app *fiber.App, surveyCtl *controllers.SurveyController, answerCtl *controllers.AnswerController) {
	surveyRoutes(app, surveyCtl, answerCtl)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
