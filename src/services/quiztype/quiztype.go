package quiztype

import (
	"sort"

	"survey-board-backend/src/models"
	"survey-board-backend/src/utils"
)

// Quiz type codes. ชุดนี้ปิดตาย การเพิ่ม type ใหม่ต้องเพิ่ม variant
// พร้อม validator ทั้งสองตัว ไม่เช็ค type ตอน runtime ที่อื่น
const (
	Text           = "text"
	SelectOne      = "select_one"
	SelectMultiple = "select_multiple"
)

// variant คู่ validator ของ quiz type หนึ่งตัว
type variant struct {
	// validateShape ตรวจคำถามตอนสร้าง survey
	validateShape func(q *models.QuizCreate) error
	// validateAnswer ตรวจคำตอบและ normalize ให้อยู่ในรูปเก็บลง DB
	validateAnswer func(quiz *models.Quiz, in *models.QuizAnswerIn, out *models.QuizAnswer) error
}

var variants = map[string]variant{
	Text: {
		validateShape: func(q *models.QuizCreate) error {
			if len(q.Options) > 0 {
				return utils.BadRequest("text questions do not take options")
			}
			return nil
		},
		validateAnswer: func(quiz *models.Quiz, in *models.QuizAnswerIn, out *models.QuizAnswer) error {
			if in.Text == nil {
				return utils.BadRequest("text answer is required")
			}
			out.Text = in.Text
			return nil
		},
	},
	SelectOne: {
		validateShape: requireOptions,
		validateAnswer: func(quiz *models.Quiz, in *models.QuizAnswerIn, out *models.QuizAnswer) error {
			if in.Selection == nil {
				return utils.BadRequest("An option that does not exist.")
			}
			if *in.Selection < 0 || *in.Selection >= len(quiz.Options) {
				return utils.BadRequest("An option that does not exist.")
			}
			out.Selection = in.Selection
			return nil
		},
	},
	SelectMultiple: {
		validateShape: requireOptions,
		validateAnswer: func(quiz *models.Quiz, in *models.QuizAnswerIn, out *models.QuizAnswer) error {
			selections := NormalizeSelections(in.Selections)
			if len(selections) == 0 {
				return utils.BadRequest("at least one option must be selected")
			}
			for _, idx := range selections {
				if idx < 0 || idx >= len(quiz.Options) {
					return utils.BadRequest("An option that does not exist.")
				}
			}
			out.Selections = selections
			return nil
		},
	},
}

func requireOptions(q *models.QuizCreate) error {
	if len(q.Options) == 0 {
		return utils.BadRequest("options are required for select questions")
	}
	return nil
}

func unknownType(code string) error {
	return utils.BadRequest(code + " is a non-existent question type.")
}

// ValidateShape ตรวจโครงของคำถามตอนสร้าง
func ValidateShape(q *models.QuizCreate) error {
	v, ok := variants[q.Type]
	if !ok {
		return unknownType(q.Type)
	}
	return v.validateShape(q)
}

// ValidateAnswer ตรวจคำตอบกับคำถาม แล้วเติมค่าลง out ตาม type
// ไม่แตะ out.Null (เป็นเรื่องของ submission engine)
func ValidateAnswer(quiz *models.Quiz, in *models.QuizAnswerIn, out *models.QuizAnswer) error {
	v, ok := variants[quiz.Type]
	if !ok {
		return unknownType(quiz.Type)
	}
	return v.validateAnswer(quiz, in, out)
}

// IsKnown reports whether code names one of the supported quiz types.
func IsKnown(code string) bool {
	_, ok := variants[code]
	return ok
}

// NormalizeSelections เรียงจากน้อยไปมากและตัดค่าซ้ำ
func NormalizeSelections(selections []int) []int {
	if len(selections) == 0 {
		return nil
	}
	sorted := append([]int(nil), selections...)
	sort.Ints(sorted)

	out := sorted[:1]
	for _, idx := range sorted[1:] {
		if idx != out[len(out)-1] {
			out = append(out, idx)
		}
	}
	return out
}
