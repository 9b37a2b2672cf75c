package models

// ShortenResponse is returned after a link is created
type ShortenResponse struct {
	URL string `json:"url"` // Absolute short URL
}

// DetailResponse carries a human readable outcome
type DetailResponse struct {
	Detail string `json:"detail"`
}

// UpdateResponse is returned after a successful update
type UpdateResponse struct {
	Detail string `json:"detail"`
	URL    string `json:"url"`
}

// LinkStatsResponse exposes the visit counter to the link's creator
type LinkStatsResponse struct {
	ID         string `json:"id"`
	Target     string `json:"target"`
	VisitCount int64  `json:"visitCount"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
