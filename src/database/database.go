package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo ถือ client และ collection ทั้งสามของระบบ survey
// สร้างครั้งเดียวตอน start แล้ว inject เข้า service ทุกตัว ไม่ใช้ global
type Mongo struct {
	client *mongo.Client

	Surveys *mongo.Collection
	Quizzes *mongo.Collection
	Answers *mongo.Collection
}

// ConnectMongo เชื่อมต่อ MongoDB และ ping ก่อนคืน handle
func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("✅ MongoDB connected successfully")

	db := client.Database(dbName)
	return &Mongo{
		client:  client,
		Surveys: db.Collection("surveys"),
		Quizzes: db.Collection("quizzes"),
		Answers: db.Collection("answers"),
	}, nil
}

// Close ปิด connection ตอน shutdown
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
