package models

import (
	"bookit/src/types"
)

// File is an uploaded media object stored in S3. Key is the object key,
// URL the public address handed back to clients.
type File struct {
	ID          uint   `json:"id"`
	Name        string `json:"name,omitempty"`
	Key         string `gorm:"uniqueIndex" json:"key,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	UploadedBy  uint   `json:"uploaded_by,omitempty"`

	Uploader User `gorm:"foreignKey:uploaded_by" json:"-"`

	types.Timestamps
}
