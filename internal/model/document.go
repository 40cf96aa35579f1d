package model

import "time"

// Document represents an uploaded PDF and its derived JSON artifacts.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	StoragePath  string    `json:"storage_path"`
	ParsedPath   string    `json:"parsed_path"`
	MetadataPath string    `json:"metadata_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	PageCount    int       `json:"page_count"`
	DocumentDate string    `json:"document_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
