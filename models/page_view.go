package models

import "time"

// PageView is an append-only analytics record. There is no update or
// delete path except the retention purge.
type PageView struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Path      string    `json:"path" gorm:"not null;index"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	SessionID string    `json:"session_id" gorm:"index"`
	UserID    *uint     `json:"user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
