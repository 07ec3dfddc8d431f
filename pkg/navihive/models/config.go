package models

import "time"

// Config is an opaque key/value setting (site title, theme, injected CSS).
// The server stores and returns values without interpreting them.
type Config struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
