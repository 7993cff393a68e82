package answers

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"survey-board-backend/src/config"
	"survey-board-backend/src/database"
	"survey-board-backend/src/models"
	"survey-board-backend/src/services/quiztype"
	"survey-board-backend/src/services/surveys"
	"survey-board-backend/src/services/tallycache"
	"survey-board-backend/src/utils"
)

// Service รับคำตอบเข้าและคำนวณผลนับให้ admin
type Service struct {
	db         *database.Mongo
	catalog    *surveys.Service
	cache      *tallycache.Cache
	adminLevel func() (int, error)
}

func NewService(db *database.Mongo, catalog *surveys.Service, cache *tallycache.Cache) *Service {
	return &Service{
		db:         db,
		catalog:    catalog,
		cache:      cache,
		adminLevel: config.AdminRoleLevel,
	}
}

func (s *Service) requireAdmin(requester models.Requester) error {
	level, err := s.adminLevel()
	if err != nil {
		return err
	}
	if requester.IsAnonymous() || requester.RoleLevel < level {
		return utils.Forbidden("administrator role is required")
	}
	return nil
}

// Submit ตรวจและบันทึกคำตอบหนึ่งชุดต่อ (survey, requester)
// ส่งซ้ำจะแทนของเดิมด้วย upsert เงื่อนไขเดียว ไม่มีหน้าต่าง delete/insert
func (s *Service) Submit(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID, req *models.SubmitAnswerRequest) (*models.Answer, error) {
	var survey models.Survey
	err := s.db.Surveys.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFound("survey not found")
		}
		return nil, err
	}

	// เช็ค role แบบอ่อนตามพฤติกรรมเดิม ไม่ใช่ 403
	if survey.Role > requester.RoleLevel {
		return nil, utils.BadRequest("the survey requires a higher role level")
	}

	quizzes, err := s.catalog.GetQuizzes(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(quizzes) {
		return nil, utils.BadRequest("number of responses must equal number of questions")
	}

	entries, err := BuildQuizAnswers(quizzes, req.Answers)
	if err != nil {
		return nil, err
	}
	if len(entries) != len(quizzes) {
		return nil, utils.BadRequest("number of responses must equal number of questions")
	}

	answer := &models.Answer{
		ParentSurvey: surveyID,
		User:         requester.UserID,
		Answers:      entries,
		CreatedAt:    time.Now(),
	}

	// ส่งซ้ำแทนของเดิมทั้งผู้ใช้ปกติและนิรนาม
	// user null ใน filter จับคู่เอกสาร null เดิมของ survey เดียวกัน
	opts := options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After)
	var stored models.Answer
	err = s.db.Answers.FindOneAndReplace(ctx, replaceFilter(surveyID, requester.UserID), answer, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	answer.ID = stored.ID

	quizIDs := make([]string, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizIDs = append(quizIDs, quiz.ID.Hex())
	}
	s.cache.InvalidateSurvey(ctx, surveyID.Hex(), quizIDs)

	log.Printf("[answers] stored survey=%s entries=%d anonymous=%t",
		surveyID.Hex(), len(entries), requester.UserID == nil)

	return answer, nil
}

// replaceFilter คือ key หนึ่งชุดคำตอบต่อ (survey, requester)
// user เป็น nil ได้ ตอนนั้น filter เลือกเอกสาร user null ของ survey นั้น
func replaceFilter(surveyID primitive.ObjectID, user *string) bson.M {
	return bson.M{"parentSurvey": surveyID, "user": user}
}

// BuildQuizAnswers จับคู่คำตอบกับคำถามตามลำดับ แล้ว validate ทีละคู่
// คืน error ตัวแรกที่เจอ ไม่มีการเขียนใด ๆ เกิดขึ้นใน function นี้
func BuildQuizAnswers(quizzes []models.Quiz, in []models.QuizAnswerIn) ([]models.QuizAnswer, error) {
	entries := make([]models.QuizAnswer, 0, len(quizzes))
	for i := range quizzes {
		quiz := &quizzes[i]
		entry := &in[i]

		if entry.Type != quiz.Type {
			if !quiztype.IsKnown(entry.Type) {
				return nil, utils.BadRequest(entry.Type + " is a non-existent question type.")
			}
			return nil, utils.BadRequest(fmt.Sprintf("answer %d does not match the question type", i))
		}

		out := models.QuizAnswer{ParentQuiz: quiz.ID}

		if entry.Null {
			if quiz.Require {
				return nil, utils.BadRequest("Required response questions must be answered.")
			}
			out.Null = true
			entries = append(entries, out)
			continue
		}

		if err := quiztype.ValidateAnswer(quiz, entry, &out); err != nil {
			return nil, err
		}
		entries = append(entries, out)
	}
	return entries, nil
}

// ListRaw คืนคำตอบดิบของ survey แบบแบ่งหน้า เรียงตามลำดับที่เก็บ (admin เท่านั้น)
func (s *Service) ListRaw(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID, params models.PaginationParams, requestURL string) (*models.PaginatedResponse, error) {
	if err := s.requireAdmin(requester); err != nil {
		return nil, err
	}
	params = params.Clamp(models.AnswerPageBounds)

	filter := bson.M{"parentSurvey": surveyID}
	total, err := s.db.Answers.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.PageSize)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.db.Answers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.Answer{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(results, total, params, requestURL), nil
}

// Analyze วิเคราะห์คำตอบของ quiz เดียว (admin เท่านั้น)
// text: รายการข้อความแบบแบ่งหน้า / select: ผลนับครบทุก option รวมตัวที่ 0
func (s *Service) Analyze(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID, quizIDHex string, params models.PaginationParams, requestURL string) (interface{}, error) {
	if err := s.requireAdmin(requester); err != nil {
		return nil, err
	}
	if quizIDHex == "" {
		return nil, utils.BadRequest("answer_id is required")
	}
	quizID, err := primitive.ObjectIDFromHex(quizIDHex)
	if err != nil {
		return nil, utils.BadRequest("There are no questions.")
	}

	var quiz models.Quiz
	err = s.db.Quizzes.FindOne(ctx, bson.M{"_id": quizID, "parentSurvey": surveyID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.BadRequest("There are no questions.")
		}
		return nil, err
	}

	switch quiz.Type {
	case quiztype.Text:
		return s.analyzeText(ctx, surveyID, quizID, params, requestURL)
	case quiztype.SelectOne, quiztype.SelectMultiple:
		return s.tally(ctx, surveyID, &quiz)
	default:
		return nil, utils.BadRequest(quiz.Type + " is a non-existent question type.")
	}
}

// analyzeText ดึงข้อความคำตอบทั้งหมดของ quiz แบบแบ่งหน้า
func (s *Service) analyzeText(ctx context.Context, surveyID, quizID primitive.ObjectID, params models.PaginationParams, requestURL string) (*models.PaginatedResponse, error) {
	params = params.Clamp(models.AnswerPageBounds)

	match := []bson.M{
		{"$match": bson.M{"parentSurvey": surveyID}},
		{"$unwind": "$answers"},
		{"$match": bson.M{
			"answers.parentQuiz": quizID,
			"answers.text":       bson.M{"$exists": true},
		}},
	}

	countPipeline := append(append([]bson.M{}, match...), bson.M{"$count": "count"})
	cur, err := s.db.Answers.Aggregate(ctx, countPipeline)
	if err != nil {
		return nil, err
	}
	var countDocs []struct {
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &countDocs); err != nil {
		return nil, err
	}
	var total int64
	if len(countDocs) > 0 {
		total = countDocs[0].Count
	}

	listPipeline := append(append([]bson.M{}, match...),
		bson.M{"$skip": params.GetSkip()},
		bson.M{"$limit": int64(params.PageSize)},
		bson.M{"$project": bson.M{"_id": 0, "text": "$answers.text"}},
	)
	cur, err = s.db.Answers.Aggregate(ctx, listPipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Text string `bson:"text"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		texts = append(texts, row.Text)
	}

	return models.NewPaginatedResponse(texts, total, params, requestURL), nil
}

// tally นับคำตอบต่อ option ด้วย aggregation แล้วเติม option ที่ไม่มีใครเลือก
// group-by เฉย ๆ จะทำ option ที่ count เป็น 0 หายไปจากผล
func (s *Service) tally(ctx context.Context, surveyID primitive.ObjectID, quiz *models.Quiz) ([]models.TallyItem, error) {
	if items, ok := s.cache.Get(ctx, surveyID.Hex(), quiz.ID.Hex()); ok {
		return items, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"parentSurvey": surveyID}},
		{"$unwind": "$answers"},
		{"$match": bson.M{"answers.parentQuiz": quiz.ID}},
	}
	if quiz.Type == quiztype.SelectMultiple {
		pipeline = append(pipeline,
			bson.M{"$unwind": "$answers.selections"},
			bson.M{"$group": bson.M{
				"_id":   "$answers.selections",
				"count": bson.M{"$sum": 1},
			}},
		)
	} else {
		pipeline = append(pipeline,
			bson.M{"$match": bson.M{"answers.selection": bson.M{"$exists": true}}},
			bson.M{"$group": bson.M{
				"_id":   "$answers.selection",
				"count": bson.M{"$sum": 1},
			}},
		)
	}

	cur, err := s.db.Answers.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grouped []struct {
		Idx   int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &grouped); err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(grouped))
	for _, g := range grouped {
		counts[g.Idx] = g.Count
	}

	items := FillTally(quiz.Options, counts)
	s.cache.Set(ctx, surveyID.Hex(), quiz.ID.Hex(), items)
	return items, nil
}

// FillTally สร้างผลนับครบทุก option ตามลำดับ index
// option ที่ไม่อยู่ใน counts ได้ count 0
func FillTally(options []string, counts map[int]int64) []models.TallyItem {
	items := make([]models.TallyItem, 0, len(options))
	for idx, text := range options {
		items = append(items, models.TallyItem{
			Text:  text,
			Idx:   idx,
			Count: counts[idx],
		})
	}
	return items
}
