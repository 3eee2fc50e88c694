package model

import "time"

// PracticeSession is the root aggregate: every document, assessment and chat
// message belongs to exactly one session.
type PracticeSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    int       `json:"user_id" gorm:"index"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
