package domain

import "time"

// Term is a glossary entry.
type Term struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
