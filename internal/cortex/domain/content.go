package domain

import "time"

// Content states.
const (
	StateDraft     = "draft"
	StateReview    = "review"
	StatePublished = "published"
)

// ValidState reports whether state is one of the known content states.
func ValidState(state string) bool {
	switch state {
	case StateDraft, StateReview, StatePublished:
		return true
	}
	return false
}

// Content is a CMS content item (article, page, ...). PublishTime is stamped
// by the server the moment an item enters the published state, never by the
// client.
type Content struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"` // e.g. "article", "page"
	State       string     `json:"state"`
	Body        string     `json:"body"`
	PublishTime *time.Time `json:"publishTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
