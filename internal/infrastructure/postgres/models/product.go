package models

import "time"

type ProductModel struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Name     string `gorm:"not null"`
	Price    float64
	ImageURL string
	Stock    int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index;not null"`
	ProductID string `gorm:"type:uuid;not null"`
	Quantity  int    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
