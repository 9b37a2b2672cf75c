package entities

import "time"

// ShortLink is the stored mapping from a short identifier to its target URL.
type ShortLink struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	VisitCount int64     `json:"visitCount"`
	CreatorIP  string    `json:"-"` // Authorization credential, never serialized
	CreatedAt  time.Time `json:"createdAt,omitempty"` // Zero for backends that do not track it
}
