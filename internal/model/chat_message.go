package model

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one turn in a session's tutoring conversation. Append-only,
// replayed in creation order.
type ChatMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID uint      `json:"session_id" gorm:"not null;index"`
	UserID    int       `json:"user_id" gorm:"index"`
	Message   string    `json:"message" gorm:"type:text"`
	Sender    string    `json:"sender" gorm:"not null;check:sender IN ('user','bot')"`
	CreatedAt time.Time `json:"created_at"`
}
