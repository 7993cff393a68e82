package models

import (
	"math"
	"net/url"
	"strconv"
)

// PageBounds กำหนดขอบเขต page size ของแต่ละ resource
type PageBounds struct {
	Default int
	Min     int
	Max     int
}

var (
	// SurveyPageBounds สำหรับ GET /surveys
	SurveyPageBounds = PageBounds{Default: 10, Min: 1, Max: 50}
	// AnswerPageBounds สำหรับ GET /surveys/:id/answers
	AnswerPageBounds = PageBounds{Default: 50, Min: 25, Max: 100}
)

// PaginationParams ใช้เก็บค่าการแบ่งหน้า
type PaginationParams struct {
	Page     int `json:"page" query:"page" example:"1"`
	PageSize int `json:"page_size" query:"page_size" example:"10"`
}

// Clamp normalizes page/page_size into the resource bounds.
// page < 1 becomes 1; page_size 0 takes the default.
func (p PaginationParams) Clamp(b PageBounds) PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = b.Default
	}
	if p.PageSize < b.Min {
		p.PageSize = b.Min
	}
	if p.PageSize > b.Max {
		p.PageSize = b.Max
	}
	return p
}

// GetSkip คำนวณจำนวนรายการที่ต้องข้าม
func (p PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

// PaginatedResponse โครงสร้างการตอบกลับแบบแบ่งหน้า
type PaginatedResponse struct {
	Count      int64       `json:"count"`
	TotalPages int         `json:"total_pages"`
	Next       *string     `json:"next"`
	Previous   *string     `json:"previous"`
	Results    interface{} `json:"results"`
}

// NewPaginatedResponse สร้าง PaginatedResponse พร้อม next/previous link
// จาก URL ของ request เดิม (page +1 / -1, เป็น null ที่ขอบ)
func NewPaginatedResponse(results interface{}, total int64, params PaginationParams, requestURL string) *PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	resp := &PaginatedResponse{
		Count:      total,
		TotalPages: totalPages,
		Results:    results,
	}
	if params.Page < totalPages {
		resp.Next = pageURL(requestURL, params.Page+1)
	}
	if params.Page > 1 {
		resp.Previous = pageURL(requestURL, params.Page-1)
	}
	return resp
}

func pageURL(requestURL string, page int) *string {
	u, err := url.Parse(requestURL)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
