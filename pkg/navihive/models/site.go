package models

import (
	"time"

	"gorm.io/gorm"
)

// Site represents a single bookmarked link owned by exactly one group.
// OrderNum defines its rank among the sites of the same group.
type Site struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	GroupID     uint           `gorm:"not null;index" json:"group_id"`
	Name        string         `gorm:"not null" json:"name"`
	URL         string         `gorm:"not null" json:"url"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
	Notes       string         `json:"notes"`
	OrderNum    int            `gorm:"default:0;index" json:"order_num"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
