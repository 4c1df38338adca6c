package models

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreatePostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Content    string `json:"content" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Excerpt    string `json:"excerpt"`
}

type UpdatePostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Content    string `json:"content" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Excerpt    string `json:"excerpt"`
}

type PostListParams struct {
	Status     string `form:"status"`
	CategoryID uint   `form:"category_id"`
	Mine       bool   `form:"mine"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}

// PostFilter is the storage-level shape of a listing, composed by the
// service after the authorization scope has been applied.
type PostFilter struct {
	Status     PostStatus
	CategoryID uint
	AuthorID   uint
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type TrackRequest struct {
	Path      string `json:"path" binding:"required"`
	Referrer  string `json:"referrer"`
	SessionID string `json:"session_id"`
}

type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type DailyCount struct {
	Day   time.Time `json:"day"`
	Views int64     `json:"views"`
}

type AnalyticsStats struct {
	TotalViews int64        `json:"total_views"`
	TopPages   []PathCount  `json:"top_pages"`
	DailyViews []DailyCount `json:"daily_views"`
}
