package surveys

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"survey-board-backend/src/models"
	"survey-board-backend/src/services/quiztype"
	"survey-board-backend/src/utils"
)

func textQuizzes(n int) []models.QuizCreate {
	quizzes := make([]models.QuizCreate, 0, n)
	for i := 0; i < n; i++ {
		quizzes = append(quizzes, models.QuizCreate{
			Title: "q",
			Type:  quiztype.Text,
		})
	}
	return quizzes
}

func strPtr(s string) *string { return &s }

// gate ตรวจก่อนแตะ DB จึงทดสอบได้โดยไม่ต้องมี Mongo
func TestAdminGate(t *testing.T) {
	lowRole := models.Requester{UserID: strPtr("u1"), RoleLevel: 1}
	req := &models.CreateSurveyRequest{Title: "T", Quizzes: textQuizzes(1)}

	adminAt100 := func() (int, error) { return 100, nil }

	t.Run("CreateLowRoleForbidden", func(t *testing.T) {
		svc := &Service{adminLevel: adminAt100}

		_, err := svc.Create(context.Background(), lowRole, req)
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("CreateAnonymousForbidden", func(t *testing.T) {
		svc := &Service{adminLevel: adminAt100}

		// role สูงแต่ไม่มี identity ก็ยังไม่ใช่ admin
		_, err := svc.Create(context.Background(), models.Requester{RoleLevel: 200}, req)
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("PatchLowRoleForbidden", func(t *testing.T) {
		svc := &Service{adminLevel: adminAt100}

		title := "new"
		_, err := svc.Patch(context.Background(), lowRole, primitive.NilObjectID, &models.UpdateSurveyRequest{Title: &title})
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("MissingAdminLevelIsConfigError", func(t *testing.T) {
		svc := &Service{adminLevel: func() (int, error) {
			return 0, utils.InternalConfig("admin role level is not configured")
		}}
		admin := models.Requester{UserID: strPtr("a1"), RoleLevel: 100}

		_, err := svc.Create(context.Background(), admin, req)
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 500, appErr.Status)
	})
}

func TestValidateCreate(t *testing.T) {
	validate := validator.New()

	t.Run("ValidRequest", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title: "T",
			Role:  100,
			Quizzes: []models.QuizCreate{
				{Title: "q1", Type: quiztype.Text, Require: true},
				{Title: "q2", Type: quiztype.SelectOne, Require: true, Options: []string{"a", "b"}},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("ZeroQuizzes", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title:   "T",
			Quizzes: []models.QuizCreate{},
		})
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("SixtyOneQuizzes", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title:   "T",
			Quizzes: textQuizzes(61),
		})
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("SixtyQuizzesAllowed", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title:   "T",
			Quizzes: textQuizzes(60),
		})
		assert.NoError(t, err)
	})

	t.Run("TitleTooLong", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title:   strings.Repeat("x", 33),
			Quizzes: textQuizzes(1),
		})
		assert.Error(t, err)
	})

	t.Run("OptionTooLong", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title: "T",
			Quizzes: []models.QuizCreate{
				{Title: "q", Type: quiztype.SelectOne, Options: []string{strings.Repeat("x", 17)}},
			},
		})
		assert.Error(t, err)
	})

	t.Run("BadQuizShape", func(t *testing.T) {
		err := ValidateCreate(validate, &models.CreateSurveyRequest{
			Title: "T",
			Quizzes: []models.QuizCreate{
				{Title: "q", Type: quiztype.SelectOne}, // no options
			},
		})
		assert.Error(t, err)
	})
}
