package models

import (
	"time"
)

type PostStatus string

const (
	StatusPending   PostStatus = "pending"
	StatusPublished PostStatus = "published"
	StatusRejected  PostStatus = "rejected"
)

// Post is one article. The slug is derived from the title at creation time
// and never changes afterwards; author_id is immutable as well. PublishedAt
// stays nil until the post is approved.
type Post struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	AuthorID    uint       `json:"author_id" gorm:"not null"`
	Author      User       `json:"author" gorm:"foreignKey:AuthorID"`
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Content     string     `json:"content" gorm:"type:text"`
	Excerpt     string     `json:"excerpt"`
	CategoryID  *uint      `json:"category_id"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Status      PostStatus `json:"status" gorm:"default:'pending'"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
