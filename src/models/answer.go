package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer เก็บคำตอบทั้งชุดของผู้ตอบหนึ่งคนต่อหนึ่ง Survey
type Answer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ParentSurvey primitive.ObjectID `bson:"parentSurvey" json:"parent_survey"`
	User         *string            `bson:"user" json:"user"`
	Answers      []QuizAnswer       `bson:"answers" json:"answers"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"created_time"`
}

// QuizAnswer คือคำตอบของคำถามเดียว เก็บค่าตามประเภทคำถาม
type QuizAnswer struct {
	ParentQuiz primitive.ObjectID `bson:"parentQuiz" json:"parent_quiz"`
	Null       bool               `bson:"null,omitempty" json:"null,omitempty"`
	Text       *string            `bson:"text,omitempty" json:"text,omitempty"`
	Selection  *int               `bson:"selection,omitempty" json:"selection,omitempty"`
	Selections []int              `bson:"selections,omitempty" json:"selections,omitempty"`
}

// --- Input DTO ---

// QuizAnswerIn carries exactly one of null/text/selection/selections,
// matching the quiz type it answers.
type QuizAnswerIn struct {
	Type       string  `json:"type" validate:"required"`
	Null       bool    `json:"null,omitempty"`
	Text       *string `json:"text,omitempty"`
	Selection  *int    `json:"selection,omitempty"`
	Selections []int   `json:"selections,omitempty"`
}

type SubmitAnswerRequest struct {
	Answers []QuizAnswerIn `json:"answers" validate:"required"`
}

// TallyItem คือผลนับต่อหนึ่งตัวเลือก รวม option ที่ count เป็น 0 ด้วย
type TallyItem struct {
	Text  string `json:"text"`
	Idx   int    `json:"idx"`
	Count int64  `json:"count"`
}
