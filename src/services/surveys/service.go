package surveys

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"survey-board-backend/src/config"
	"survey-board-backend/src/database"
	"survey-board-backend/src/jobs"
	"survey-board-backend/src/models"
	"survey-board-backend/src/services/quiztype"
	"survey-board-backend/src/services/tallycache"
	"survey-board-backend/src/utils"
)

const (
	// ขอบเขตจำนวนคำถามต่อหนึ่ง survey
	MinQuizzes = 1
	MaxQuizzes = 60
)

// Service จัดการ catalog ของ survey และคำถามในนั้น
// collection ทั้งหมด inject ตอนสร้าง ไม่มี global
type Service struct {
	db         *database.Mongo
	validate   *validator.Validate
	cache      *tallycache.Cache
	tasks      *asynq.Client
	adminLevel func() (int, error)
}

func NewService(db *database.Mongo, cache *tallycache.Cache, tasks *asynq.Client) *Service {
	return &Service{
		db:         db,
		validate:   validator.New(),
		cache:      cache,
		tasks:      tasks,
		adminLevel: config.AdminRoleLevel,
	}
}

// requireAdmin ตรวจว่า requester มี role ถึงระดับ admin
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

// Create สร้าง survey พร้อมคำถามทั้งหมดในคำขอเดียว
// ตรวจทุกคำถามให้ผ่านก่อนค่อยเขียน ไม่มีการเขียนครึ่งเดียว
func (s *Service) Create(ctx context.Context, requester models.Requester, req *models.CreateSurveyRequest) (*models.SurveyWithQuizzes, error) {
	if err := s.requireAdmin(requester); err != nil {
		return nil, err
	}
	if err := ValidateCreate(s.validate, req); err != nil {
		return nil, err
	}

	now := time.Now()
	survey := models.Survey{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
		Activate:    req.Activate,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	quizzes := make([]models.Quiz, 0, len(req.Quizzes))
	docs := make([]interface{}, 0, len(req.Quizzes))
	for i, in := range req.Quizzes {
		quiz := models.Quiz{
			ID:           primitive.NewObjectID(),
			ParentSurvey: survey.ID,
			Title:        in.Title,
			Description:  in.Description,
			Require:      in.Require,
			Type:         in.Type,
			Order:        i + 1,
			Options:      in.Options,
		}
		quizzes = append(quizzes, quiz)
		docs = append(docs, quiz)
	}

	if _, err := s.db.Surveys.InsertOne(ctx, survey); err != nil {
		return nil, err
	}
	if _, err := s.db.Quizzes.InsertMany(ctx, docs); err != nil {
		return nil, err
	}

	log.Printf("[surveys] created id=%s quizzes=%d", survey.ID.Hex(), len(quizzes))

	return &models.SurveyWithQuizzes{Survey: survey, Quizzes: quizzes}, nil
}

// ValidateCreate ตรวจ request สร้าง survey ทั้งก้อนโดยไม่แตะ DB
func ValidateCreate(validate *validator.Validate, req *models.CreateSurveyRequest) error {
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest("Invalid input: " + err.Error())
	}
	if len(req.Quizzes) < MinQuizzes || len(req.Quizzes) > MaxQuizzes {
		return utils.BadRequest("a survey must have between 1 and 60 questions")
	}
	for i := range req.Quizzes {
		if err := quiztype.ValidateShape(&req.Quizzes[i]); err != nil {
			return err
		}
	}
	return nil
}

// List ดึง survey ที่ requester มีสิทธิ์เห็น แบ่งหน้าตาม bounds ของ resource นี้
func (s *Service) List(ctx context.Context, requester models.Requester, titleFilter string, params models.PaginationParams, requestURL string) (*models.PaginatedResponse, error) {
	params = params.Clamp(models.SurveyPageBounds)

	filter := bson.M{
		"role":     bson.M{"$lte": requester.RoleLevel},
		"activate": true,
	}
	if titleFilter != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(titleFilter),
			Options: "i",
		}}
	}

	total, err := s.db.Surveys.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.PageSize)).
		SetSort(bson.D{{Key: "activate", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := s.db.Surveys.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := []models.Survey{}
	if err = cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(surveys, total, params, requestURL), nil
}

// Get คืน survey พร้อมคำถามตามลำดับที่สร้าง
func (s *Service) Get(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID) (*models.SurveyWithQuizzes, error) {
	survey, err := s.findSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	// ตามพฤติกรรมเดิม: role ไม่ถึงถือเป็นคำขอไม่ผ่านการตรวจ ไม่ใช่ 403
	if survey.Role > requester.RoleLevel {
		return nil, utils.BadRequest("the survey requires a higher role level")
	}

	quizzes, err := s.GetQuizzes(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	return &models.SurveyWithQuizzes{Survey: *survey, Quizzes: quizzes}, nil
}

// Patch แก้ field บางส่วนของ survey และอัปเดต modifiedAt เสมอ
func (s *Service) Patch(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID, req *models.UpdateSurveyRequest) (*models.Survey, error) {
	if err := s.requireAdmin(requester); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, utils.BadRequest("Invalid input: " + err.Error())
	}
	if req.Empty() {
		return nil, utils.BadRequest("at least one field must be provided")
	}

	set := bson.M{"modifiedAt": time.Now()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.Activate != nil {
		set["activate"] = *req.Activate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Survey
	err := s.db.Surveys.FindOneAndUpdate(ctx, bson.M{"_id": surveyID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFound("survey not found")
		}
		return nil, err
	}

	return &updated, nil
}

// Delete ลบ survey และ cascade ลบคำถามกับคำตอบทั้งหมด
// children ที่หายไปแล้วไม่ถือเป็น error
func (s *Service) Delete(ctx context.Context, requester models.Requester, surveyID primitive.ObjectID) error {
	if err := s.requireAdmin(requester); err != nil {
		return err
	}
	if _, err := s.findSurvey(ctx, surveyID); err != nil {
		return err
	}

	quizzes, err := s.GetQuizzes(ctx, surveyID)
	if err != nil {
		return err
	}

	if _, err := s.db.Surveys.DeleteOne(ctx, bson.M{"_id": surveyID}); err != nil {
		return err
	}
	if _, err := s.db.Quizzes.DeleteMany(ctx, bson.M{"parentSurvey": surveyID}); err != nil {
		return err
	}
	if _, err := s.db.Answers.DeleteMany(ctx, bson.M{"parentSurvey": surveyID}); err != nil {
		return err
	}

	quizIDs := make([]string, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizIDs = append(quizIDs, quiz.ID.Hex())
	}
	s.cache.InvalidateSurvey(ctx, surveyID.Hex(), quizIDs)

	// cascade ข้างบนไม่ atomic submit ที่แทรกเข้ามาจะถูก task นี้ตามเก็บ
	s.enqueueSweep(surveyID)

	log.Printf("[surveys] deleted id=%s quizzes=%d", surveyID.Hex(), len(quizzes))
	return nil
}

func (s *Service) enqueueSweep(surveyID primitive.ObjectID) {
	if s.tasks == nil {
		return
	}
	task, err := jobs.NewSweepOrphanAnswersTask(surveyID.Hex())
	if err != nil {
		log.Println("[surveys] sweep task build failed:", err)
		return
	}
	if _, err := s.tasks.Enqueue(task, asynq.ProcessIn(30*time.Second)); err != nil {
		log.Println("[surveys] sweep task enqueue failed:", err)
	}
}

func (s *Service) findSurvey(ctx context.Context, surveyID primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.Surveys.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFound("survey not found")
		}
		return nil, err
	}
	return &survey, nil
}

// GetQuizzes ดึงคำถามของ survey ตามลำดับที่สร้าง
func (s *Service) GetQuizzes(ctx context.Context, surveyID primitive.ObjectID) ([]models.Quiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := s.db.Quizzes.Find(ctx, bson.M{"parentSurvey": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []models.Quiz
	if err = cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}
