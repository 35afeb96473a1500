package models

import "time"

// Logo stores an enterprise logo image, one per enterprise
type Logo struct {
	ID           int64  `json:"id" db:"id"`
	EnterpriseID int64  `json:"enterpriseId" db:"enterprise_id"`
	Data         []byte `json:"-" db:"data"`
	ContentType  string `json:"contentType" db:"content_type"`
}

// ProfilePhoto stores a user profile picture, one per user
type ProfilePhoto struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	FileName    string    `json:"fileName" db:"file_name"`
	ContentType string    `json:"contentType" db:"content_type"`
	Data        []byte    `json:"-" db:"data"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}
