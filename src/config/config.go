package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"survey-board-backend/src/utils"
)

// Load โหลดค่า Environment Variables จากไฟล์ .env ถ้ามี
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
}

// MongoURI คืนค่า connection string ของ MongoDB
func MongoURI() string {
	return os.Getenv("MONGO_URI")
}

// DatabaseName คืนชื่อ database (default: SurveyBoardDB)
func DatabaseName() string {
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "SurveyBoardDB"
	}
	return name
}

// RedisURI เช่น localhost:6379 (ว่างได้ = ไม่ใช้ Redis)
func RedisURI() string {
	return os.Getenv("REDIS_URI")
}

// AppPort คืน port ของ HTTP server (default 8888 ตามเดิม)
func AppPort() string {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8888"
	}
	return port
}

// AdminRoleLevel คืนระดับ role ขั้นต่ำของ admin
// ค่านี้ต้องตั้งเสมอ ถ้าไม่มีถือเป็น config ผิดฝั่ง server ไม่ใช่ความผิด caller
func AdminRoleLevel() (int, error) {
	raw := os.Getenv("ADMIN_ROLE_LEVEL")
	if raw == "" {
		return 0, utils.InternalConfig("admin role level is not configured")
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.InternalConfig("admin role level is not a number: " + raw)
	}
	return level, nil
}
