package models

import "time"

// Advertisement is a listing owned by exactly one user.
// Price is kept as free text, exactly as submitted.
type Advertisement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	Location    string    `json:"location"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdvertisementFields are the client-editable fields of a listing.
type AdvertisementFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Location    string `json:"location"`
}

// Apply overwrites every editable field of ad with f.
func (f AdvertisementFields) Apply(ad *Advertisement) {
	ad.Title = f.Title
	ad.Description = f.Description
	ad.Type = f.Type
	ad.Category = f.Category
	ad.Price = f.Price
	ad.Location = f.Location
}
