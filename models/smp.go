package models

import "time"

// Smp is a registered business entity subject to inspection.
type Smp struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Inn       string    `gorm:"size:12;index" json:"inn"`
	Address   *string   `gorm:"size:500" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Smp) TableName() string {
	return "smp"
}

type NewSmp struct {
	Name    string  `json:"name" binding:"required"`
	Inn     string  `json:"inn"`
	Address *string `json:"address"`
}
