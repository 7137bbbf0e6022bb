package models

import "time"

// Customer is a walk-in or registered customer record.
// Phone and Email are pointers so "not provided" and "provided empty"
// stay distinguishable on updates.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	Phone     *string   `json:"phone" gorm:"type:varchar(50)"`
	Email     *string   `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
