package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-board-backend/src/utils"
)

func TestAdminRoleLevel(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		t.Setenv("ADMIN_ROLE_LEVEL", "")

		_, err := AdminRoleLevel()
		require.Error(t, err)

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 500, appErr.Status)
	})

	t.Run("NotANumber", func(t *testing.T) {
		t.Setenv("ADMIN_ROLE_LEVEL", "boss")

		_, err := AdminRoleLevel()
		assert.Error(t, err)
	})

	t.Run("Valid", func(t *testing.T) {
		t.Setenv("ADMIN_ROLE_LEVEL", "100")

		level, err := AdminRoleLevel()
		require.NoError(t, err)
		assert.Equal(t, 100, level)
	})
}

func TestDefaults(t *testing.T) {
	t.Setenv("MONGO_DB", "")
	t.Setenv("APP_PORT", "")

	assert.Equal(t, "SurveyBoardDB", DatabaseName())
	assert.Equal(t, "8888", AppPort())
}
