package media

import "time"

// RequestUploadRequest asks for a presigned upload URL
type RequestUploadRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"omitempty,min=1"`
}

// RequestUploadResponse carries the presigned upload URL
type RequestUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
