package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"survey-board-backend/src/middleware"
	"survey-board-backend/src/models"
	"survey-board-backend/src/services/surveys"
	"survey-board-backend/src/utils"
)

type SurveyController struct {
	service *surveys.Service
}

func NewSurveyController(service *surveys.Service) *SurveyController {
	return &SurveyController{service: service}
}

func paginationFromQuery(c *fiber.Ctx) models.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "0"))
	return models.PaginationParams{Page: page, PageSize: pageSize}
}

// CreateSurvey godoc
// @Summary      Create a new survey with its questions
// @Description  Admin only. The survey and all questions are validated before anything is written.
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        body body models.CreateSurveyRequest true "Survey and questions"
// @Success      201  {object}  models.SurveyWithQuizzes
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /surveys [post]
func (ctl *SurveyController) CreateSurvey(c *fiber.Ctx) error {
	var req models.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	created, err := ctl.service.Create(c.Context(), middleware.GetRequester(c), &req)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAllSurveys godoc
// @Summary      List surveys visible to the requester
// @Description  Active surveys whose role gate is at or below the requester's level, newest first.
// @Tags         surveys
// @Produce      json
// @Param        page      query  int     false  "Page number" default(1)
// @Param        page_size query  int     false  "Items per page (1-50)" default(10)
// @Param        title     query  string  false  "Case-insensitive title filter"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /surveys [get]
func (ctl *SurveyController) GetAllSurveys(c *fiber.Ctx) error {
	page, err := ctl.service.List(c.Context(), middleware.GetRequester(c), c.Query("title"), paginationFromQuery(c), c.OriginalURL())
	if err != nil {
		return utils.WriteError(c, err)
	}
	return c.JSON(page)
}

// GetSurveyByID godoc
// @Summary      Get a survey with its questions
// @Tags         surveys
// @Produce      json
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.SurveyWithQuizzes
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id} [get]
func (ctl *SurveyController) GetSurveyByID(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	survey, err := ctl.service.Get(c.Context(), middleware.GetRequester(c), surveyID)
	if err != nil {
		return utils.WriteError(c, err)
	}
	return c.JSON(survey)
}

// UpdateSurvey godoc
// @Summary      Partially update a survey
// @Description  Admin only. At least one of title/description/role/activate must be present.
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        id   path string true "Survey ID"
// @Param        body body models.UpdateSurveyRequest true "Fields to update"
// @Success      200  {object}  models.Survey
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id} [patch]
func (ctl *SurveyController) UpdateSurvey(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req models.UpdateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	updated, err := ctl.service.Patch(c.Context(), middleware.GetRequester(c), surveyID, &req)
	if err != nil {
		return utils.WriteError(c, err)
	}
	return c.JSON(updated)
}

// DeleteSurvey godoc
// @Summary      Delete a survey and everything under it
// @Description  Admin only. Questions and answers are cascade-deleted.
// @Tags         surveys
// @Produce      json
// @Param        id path string true "Survey ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id} [delete]
func (ctl *SurveyController) DeleteSurvey(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	if err := ctl.service.Delete(c.Context(), middleware.GetRequester(c), surveyID); err != nil {
		return utils.WriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Survey deleted successfully"})
}
