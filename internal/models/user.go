// Package models contains data structures for the classifieds domain.
package models

import "time"

// User is an account on the board. Username and email are unique.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:hashed_password;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
