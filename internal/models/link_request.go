package models

// ShortenRequest represents the request body for POST /shorten.
// Empty values reach the service, which owns url validation.
type ShortenRequest struct {
	URL string `json:"url"`
}

// UpdateRequest represents the request body for POST /update.
// UUID carries the short identifier to change.
type UpdateRequest struct {
	UUID string `json:"uuid"`
	URL  string `json:"url"`
}
