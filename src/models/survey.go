package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Survey ---
type Survey struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required,max=32"`
	Description string             `bson:"description" json:"description" validate:"max=256"`
	Role        int                `bson:"role" json:"role"`
	Activate    bool               `bson:"activate" json:"activate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_time"`
	ModifiedAt  time.Time          `bson:"modifiedAt" json:"modified_time"`
}

// --- Quiz ---
type Quiz struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ParentSurvey primitive.ObjectID `bson:"parentSurvey" json:"parent_survey"`
	Title        string             `bson:"title" json:"title" validate:"required,max=32"`
	Description  string             `bson:"description" json:"description" validate:"max=256"`
	Require      bool               `bson:"require" json:"require"`
	Type         string             `bson:"type" json:"type"`
	Order        int                `bson:"order" json:"order"`

	// Options only exist for select_one / select_multiple quizzes.
	Options []string `bson:"options,omitempty" json:"options,omitempty" validate:"dive,max=16"`
}

// SurveyWithQuizzes คือ Survey พร้อมรายการคำถามตามลำดับ
type SurveyWithQuizzes struct {
	Survey
	Quizzes []Quiz `json:"quizzes"`
}

// --- Input DTOs ---

type QuizCreate struct {
	Title       string   `json:"title" validate:"required,max=32"`
	Description string   `json:"description" validate:"max=256"`
	Require     bool     `json:"require"`
	Type        string   `json:"type" validate:"required"`
	Options     []string `json:"options,omitempty" validate:"dive,max=16"`
}

type CreateSurveyRequest struct {
	Title       string       `json:"title" validate:"required,max=32"`
	Description string       `json:"description" validate:"max=256"`
	Role        int          `json:"role"`
	Activate    bool         `json:"activate"`
	Quizzes     []QuizCreate `json:"quizzes" validate:"required,dive"`
}

// UpdateSurveyRequest ใช้กับ PATCH (nil = ไม่แก้ field นั้น)
type UpdateSurveyRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=32"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=256"`
	Role        *int    `json:"role,omitempty"`
	Activate    *bool   `json:"activate,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (r *UpdateSurveyRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Role == nil && r.Activate == nil
}
