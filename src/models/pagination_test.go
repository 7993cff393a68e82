package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := PaginationParams{}.Clamp(SurveyPageBounds)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.PageSize)
	})

	t.Run("SurveyBounds", func(t *testing.T) {
		p := PaginationParams{Page: -3, PageSize: 500}.Clamp(SurveyPageBounds)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.PageSize)
	})

	t.Run("AnswerBounds", func(t *testing.T) {
		p := PaginationParams{Page: 2, PageSize: 10}.Clamp(AnswerPageBounds)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 25, p.PageSize)

		p = PaginationParams{Page: 2}.Clamp(AnswerPageBounds)
		assert.Equal(t, 50, p.PageSize)
	})
}

func TestGetSkip(t *testing.T) {
	p := PaginationParams{Page: 3, PageSize: 25}
	assert.Equal(t, int64(50), p.GetSkip())

	p = PaginationParams{Page: 1, PageSize: 10}
	assert.Equal(t, int64(0), p.GetSkip())
}

func TestNewPaginatedResponse(t *testing.T) {
	params := PaginationParams{Page: 2, PageSize: 10}

	t.Run("MiddlePageHasBothLinks", func(t *testing.T) {
		resp := NewPaginatedResponse([]string{}, 35, params, "/surveys?page=2&page_size=10")
		assert.Equal(t, int64(35), resp.Count)
		assert.Equal(t, 4, resp.TotalPages)

		require.NotNil(t, resp.Next)
		assert.Contains(t, *resp.Next, "page=3")
		require.NotNil(t, resp.Previous)
		assert.Contains(t, *resp.Previous, "page=1")
	})

	t.Run("FirstPageHasNoPrevious", func(t *testing.T) {
		resp := NewPaginatedResponse([]string{}, 35, PaginationParams{Page: 1, PageSize: 10}, "/surveys?page=1")
		assert.Nil(t, resp.Previous)
		require.NotNil(t, resp.Next)
		assert.Contains(t, *resp.Next, "page=2")
	})

	t.Run("LastPageHasNoNext", func(t *testing.T) {
		resp := NewPaginatedResponse([]string{}, 35, PaginationParams{Page: 4, PageSize: 10}, "/surveys?page=4")
		assert.Nil(t, resp.Next)
		require.NotNil(t, resp.Previous)
	})

	t.Run("EmptyResultSet", func(t *testing.T) {
		resp := NewPaginatedResponse([]string{}, 0, PaginationParams{Page: 1, PageSize: 10}, "/surveys")
		assert.Nil(t, resp.Next)
		assert.Nil(t, resp.Previous)
		assert.Equal(t, 0, resp.TotalPages)
	})

	t.Run("OtherQueryParamsPreserved", func(t *testing.T) {
		resp := NewPaginatedResponse([]string{}, 30, PaginationParams{Page: 1, PageSize: 10}, "/surveys?title=abc&page=1")
		require.NotNil(t, resp.Next)
		assert.Contains(t, *resp.Next, "title=abc")
		assert.Contains(t, *resp.Next, "page=2")
	})
}
