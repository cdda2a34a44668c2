package domain

import "time"

type Product struct {
	ID       string
	Name     string
	Price    float64
	ImageURL string
	Stock    int

	CreatedAt time.Time
	UpdatedAt time.Time
}
