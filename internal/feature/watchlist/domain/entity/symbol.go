// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Symbol is a ticker kept on the watchlist. Inactive symbols stay in the
// table but are left out of the watch.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:32;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Symbol) TableName() string {
	return "watched_symbols"
}
