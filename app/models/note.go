package models

import "time"

// Note is a remark attached to a fee record, immutable once recorded.
type Note struct {
	ID         string    `json:"id"`
	Date       Date      `json:"date"`
	Text       string    `json:"text" validate:"required"`
	AuthorID   string    `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
