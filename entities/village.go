package entities

import "time"

type Village struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	District   string    `gorm:"size:255;not null;index" json:"district"`
	Block      string    `gorm:"size:255;not null" json:"block"`
	Latitude   Decimal   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude  Decimal   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Population int       `gorm:"default:0" json:"population"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VillageWithAmenities struct {
	Village
	Amenities []Amenity `json:"amenities"`
}
