package models

import "time"

// Notification is created as a side effect of a state transition or a
// registration event. Only the Seen flag is ever mutated afterwards.
type Notification struct {
	ID          int64     `json:"id" db:"id"`
	Message     string    `json:"message" db:"message"`
	Seen        bool      `json:"seen" db:"seen"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// VerificationToken holds the one active email code per user.
// A token is ACTIVE until it is used or expires; an expired token is
// regenerated in place on the next verification attempt.
type VerificationToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Code      string    `json:"-" db:"code"`
	Used      bool      `json:"used" db:"used"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}
