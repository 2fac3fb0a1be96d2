package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is a stored user account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Resume is a stored resume. Content holds the form input together with the
// AI-normalized content and the provider that produced it.
type Resume struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Content     json.RawMessage
	AIGenerated bool
	AIScore     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CoverLetter is a stored cover letter.
type CoverLetter struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Content   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subscription is a user's billing subscription as reported by the payment
// provider. This service only reads it to decide plan entitlements.
type Subscription struct {
	UserID           uuid.UUID
	Plan             string
	Status           string
	CurrentPeriodEnd *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPro reports whether the subscription grants paid-tier entitlements.
func (s *Subscription) IsPro() bool {
	return s != nil && s.Plan == "pro" && s.Status == "active"
}
