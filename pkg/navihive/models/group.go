package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a named, ordered collection of sites on the dashboard.
// OrderNum defines its rank among all groups; commits rewrite it to a
// dense 0-based sequence.
type Group struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	OrderNum  int            `gorm:"default:0;index" json:"order_num"`

	// Relationships
	Sites []Site `gorm:"foreignKey:GroupID" json:"sites,omitempty"`
}
