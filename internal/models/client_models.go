package models

import "time"

// Client represents a guest of the villa
type Client struct {
	ID          int64     `json:"id" db:"id"`
	FullName    string    `json:"fullName" db:"full_name"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Nationality *string   `json:"nationality,omitempty" db:"nationality"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
