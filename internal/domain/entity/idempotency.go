package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey remembers the response of a processed save so a retried
// request with the same key does not create a second kwitansi
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       uuid.UUID `gorm:"uniqueIndex:idx_idempotency_user_key;type:uuid;not null"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/forms/:id/save"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
