package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSweepOrphanAnswers = "answers:sweep_orphans"

type SweepPayload struct {
	SurveyID string `json:"survey_id"`
}

// NewSweepOrphanAnswersTask สร้าง task เก็บกวาด quiz/answer ที่ survey ถูกลบไปแล้ว
// คิวไว้หลัง cascade delete เพื่อเก็บ write ที่แทรกเข้ามาระหว่าง cascade
func NewSweepOrphanAnswersTask(surveyID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SweepPayload{SurveyID: surveyID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSweepOrphanAnswers, payload), nil
}
