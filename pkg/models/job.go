package models

import "time"

// JobDescription represents a single persisted job description record.
// Records are immutable once created: there are no update or delete paths.
type JobDescription struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description"`
	DocumentURL string    `json:"document_url,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobDescriptionStats aggregates a single user's records for the dashboard.
type JobDescriptionStats struct {
	Total         int64      `json:"total"`
	WithDocuments int64      `json:"with_documents"`
	LatestCreated *time.Time `json:"latest_created_at,omitempty"`
}

// ParsedJobDescription is the heuristic extractor output. It is a best-effort
// pre-fill for the creation form, never an authoritative parse.
type ParsedJobDescription struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Description string `json:"description"`
	DocumentURL string `json:"document_url,omitempty"`
}
