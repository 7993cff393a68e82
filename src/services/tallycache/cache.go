package tallycache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"survey-board-backend/src/models"
)

// TTL สั้น ๆ พอให้กราฟผลโหวตไม่ยิง aggregation ซ้ำถี่เกินไป
const ttl = 60 * time.Second

// Cache เก็บผลนับ tally ของ quiz แบบ select ไว้ใน Redis
// client เป็น nil ได้ (ไม่มี Redis) ทุก method จะกลายเป็น no-op
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func key(surveyID, quizID string) string {
	return fmt.Sprintf("tally:%s:%s", surveyID, quizID)
}

// Get คืนผลนับที่ cache ไว้ ถ้าไม่มีหรือ Redis ใช้ไม่ได้คืน nil, false
func (c *Cache) Get(ctx context.Context, surveyID, quizID string) ([]models.TallyItem, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(surveyID, quizID)).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.TallyItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Set เก็บผลนับพร้อม TTL
func (c *Cache) Set(ctx context.Context, surveyID, quizID string, items []models.TallyItem) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(surveyID, quizID), raw, ttl).Err(); err != nil {
		log.Println("[tallycache] set failed:", err)
	}
}

// InvalidateSurvey ลบ cache ของทุก quiz ใน survey (เรียกหลัง submit/ลบ survey)
func (c *Cache) InvalidateSurvey(ctx context.Context, surveyID string, quizIDs []string) {
	if c == nil || c.client == nil || len(quizIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(quizIDs))
	for _, quizID := range quizIDs {
		keys = append(keys, key(surveyID, quizID))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Println("[tallycache] invalidate failed:", err)
	}
}
