package jobs

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"survey-board-backend/src/database"
)

// Worker รัน asynq server สำหรับงานเก็บกวาดเบื้องหลัง
type Worker struct {
	db *database.Mongo
}

func NewWorker(db *database.Mongo) *Worker {
	return &Worker{db: db}
}

// HandleSweepOrphanAnswers ลบ quiz และ answer ของ survey ที่ถูกลบไปแล้วซ้ำอีกรอบ
// cascade ตอน DeleteSurvey ไม่ได้อยู่ใน transaction เดียว submit ที่แทรกเข้ามา
// ระหว่างนั้นจะทิ้งเอกสารกำพร้าไว้ task นี้ตามไปเก็บ
func (w *Worker) HandleSweepOrphanAnswers(ctx context.Context, t *asynq.Task) error {
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	surveyID, err := primitive.ObjectIDFromHex(payload.SurveyID)
	if err != nil {
		return err
	}

	// ถ้า survey ถูกสร้างใหม่ด้วย id เดิม (เป็นไปไม่ได้กับ ObjectID) หรือยังอยู่ ให้ข้าม
	var survey bson.M
	err = w.db.Surveys.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey)
	if err == nil {
		log.Println("⚠️ Survey still exists. Skipping sweep:", surveyID.Hex())
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	quizRes, err := w.db.Quizzes.DeleteMany(ctx, bson.M{"parentSurvey": surveyID})
	if err != nil {
		return err
	}
	ansRes, err := w.db.Answers.DeleteMany(ctx, bson.M{"parentSurvey": surveyID})
	if err != nil {
		return err
	}

	if quizRes.DeletedCount > 0 || ansRes.DeletedCount > 0 {
		log.Printf("✅ Swept orphans survey=%s quizzes=%d answers=%d",
			surveyID.Hex(), quizRes.DeletedCount, ansRes.DeletedCount)
	}
	return nil
}

// Run starts the asynq server. Blocks until the server stops.
func (w *Worker) Run(redisURI string) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSweepOrphanAnswers, w.HandleSweepOrphanAnswers)

	log.Println("✅ Asynq worker started")
	return srv.Run(mux)
}
