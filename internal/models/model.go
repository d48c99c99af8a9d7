package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base for resources with auto-incrementing integer IDs.
type Model struct {
	ID        uint64    `json:"id" gorm:"primaryKey" example:"1"`              // Sequence number of the resource
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.4915Z"` // Time the resource was created
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Model) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	return nil
}
