package routes

import (
	"github.com/gofiber/fiber/v2"

	"survey-board-backend/src/controllers"
	"survey-board-backend/src/middleware"
)

// surveyRoutes กำหนด route ของ survey และ answer
// อ่านเปิดให้นิรนาม (role ต่ำสุด) เขียนต้องมี identity
func surveyRoutes(router fiber.Router, surveyCtl *controllers.SurveyController, answerCtl *controllers.AnswerController) {
	surveys := router.Group("/surveys")

	surveys.Post("/", middleware.AuthJWT, surveyCtl.CreateSurvey)
	surveys.Get("/", middleware.OptionalJWT, surveyCtl.GetAllSurveys)
	surveys.Get("/:id", middleware.OptionalJWT, surveyCtl.GetSurveyByID)
	surveys.Patch("/:id", middleware.AuthJWT, surveyCtl.UpdateSurvey)
	surveys.Delete("/:id", middleware.AuthJWT, surveyCtl.DeleteSurvey)

	surveys.Post("/:id/answers", middleware.OptionalJWT, answerCtl.SubmitAnswer)
	surveys.Get("/:id/answers", middleware.AuthJWT, answerCtl.ListAnswers)
}
