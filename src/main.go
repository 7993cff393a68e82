package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	_ "survey-board-backend/docs"
	"survey-board-backend/src/config"
	"survey-board-backend/src/controllers"
	"survey-board-backend/src/database"
	"survey-board-backend/src/jobs"
	"survey-board-backend/src/routes"
	answerSvc "survey-board-backend/src/services/answers"
	surveySvc "survey-board-backend/src/services/surveys"
	"survey-board-backend/src/services/tallycache"
)

func main() {
	config.Load()

	// เปิด storage client ตอน start ปิดตอน shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.ConnectMongo(ctx, config.MongoURI(), config.DatabaseName())
	cancel()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	redisClient := database.ConnectRedis(config.RedisURI())
	asynqClient := database.NewAsynqClient(config.RedisURI())
	cache := tallycache.New(redisClient)

	surveys := surveySvc.NewService(db, cache, asynqClient)
	answers := answerSvc.NewService(db, surveys, cache)

	// worker เก็บกวาดเอกสารกำพร้า รันเมื่อมี Redis เท่านั้น
	if config.RedisURI() != "" {
		worker := jobs.NewWorker(db)
		go func() {
			if err := worker.Run(config.RedisURI()); err != nil {
				log.Println("⚠️ Asynq worker stopped:", err)
			}
		}()
	}

	app := fiber.New()

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, controllers.NewSurveyController(surveys), controllers.NewAnswerController(answers))

	port := config.AppPort()
	go func() {
		log.Println("Server is running on port " + port)
		if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Println("⚠️ Server shutdown error:", err)
	}
	if asynqClient != nil {
		asynqClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Close(shutdownCtx); err != nil {
		log.Println("⚠️ MongoDB disconnect error:", err)
	}
}
