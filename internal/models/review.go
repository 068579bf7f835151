// Package models defines data structures for the scraper and the
// preprocessing pipeline.
package models

import "time"

// RawReview represents one review record as collected from the store,
// before any cleaning. Fields mirror the raw CSV columns.
type RawReview struct {
	ReviewDate   time.Time `json:"reviewDate"`
	ReviewID     string    `json:"reviewId"`
	ReviewText   string    `json:"reviewText"`
	BankCode     string    `json:"bankCode"`
	BankName     string    `json:"bankName"`
	Source       string    `json:"source"`
	UserName     string    `json:"userName"`
	ReplyContent string    `json:"replyContent"`
	Rating       int       `json:"rating"`
	ThumbsUp     int       `json:"thumbsUp"`
}

// AppInfo holds store metadata for one banking app.
type AppInfo struct {
	AppID    string  `json:"appId"`
	Title    string  `json:"title"`
	Installs string  `json:"installs"`
	BankCode string  `json:"bankCode"`
	BankName string  `json:"bankName"`
	Score    float64 `json:"score"`
	Ratings  int64   `json:"ratings"`
	Reviews  int64   `json:"reviews"`
}
