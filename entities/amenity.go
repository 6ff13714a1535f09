package entities

import "time"

// Amenity is keyed by (VillageID, AmenityType); there is at most one row per pair.
type Amenity struct {
	VillageID   string    `gorm:"type:char(36);primaryKey" json:"villageId"`
	AmenityType string    `gorm:"size:64;primaryKey" json:"amenityType"` // education|water|healthcare|electricity|roads
	Available   int       `gorm:"not null;default:0" json:"available"`
	Required    int       `gorm:"not null;default:0" json:"required"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Village *Village `gorm:"foreignKey:VillageID;constraint:OnDelete:CASCADE" json:"-"`
}

var AmenityTypes = []string{"education", "water", "healthcare", "electricity", "roads"}
