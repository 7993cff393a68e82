package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"survey-board-backend/src/middleware"
	"survey-board-backend/src/models"
	answerSvc "survey-board-backend/src/services/answers"
	"survey-board-backend/src/utils"
)

type AnswerController struct {
	service *answerSvc.Service
}

func NewAnswerController(service *answerSvc.Service) *AnswerController {
	return &AnswerController{service: service}
}

// SubmitAnswer godoc
// @Summary      Submit a full answer set for a survey
// @Description  One entry per question, in question order. Resubmitting replaces the previous answer set.
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        id   path string true "Survey ID"
// @Param        body body models.SubmitAnswerRequest true "One entry per question"
// @Success      201  {object}  models.Answer
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id}/answers [post]
func (ctl *AnswerController) SubmitAnswer(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	answer, err := ctl.service.Submit(c.Context(), middleware.GetRequester(c), surveyID, &req)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

// ListAnswers godoc
// @Summary      List raw answers or analyze one question
// @Description  Admin only. analyze=1 with answer_id (a question id) returns per-option counts for select questions, or a paginated text listing for text questions.
// @Tags         answers
// @Produce      json
// @Param        id        path  string true  "Survey ID"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Items per page (25-100)" default(50)
// @Param        analyze   query int    false "Set to 1 for analyze mode"
// @Param        answer_id query string false "Question id to analyze"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /surveys/{id}/answers [get]
func (ctl *AnswerController) ListAnswers(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	requester := middleware.GetRequester(c)
	params := paginationFromQuery(c)

	if c.Query("analyze") == "1" {
		result, err := ctl.service.Analyze(c.Context(), requester, surveyID, c.Query("answer_id"), params, c.OriginalURL())
		if err != nil {
			return utils.WriteError(c, err)
		}
		return c.JSON(result)
	}

	page, err := ctl.service.ListRaw(c.Context(), requester, surveyID, params, c.OriginalURL())
	if err != nil {
		return utils.WriteError(c, err)
	}
	return c.JSON(page)
}
