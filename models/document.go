package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a source document (typically a PDF rule book) held in
// document storage and used as ingestion input.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
