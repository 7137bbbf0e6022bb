package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item on the menu.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description string          `json:"description" gorm:"type:text" validate:"required"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null" validate:"required"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)"`
	Available   bool            `json:"available" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
}
