package entities

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleDistrictOfficer Role = "district_officer"
	RoleBlockOfficer    Role = "block_officer"
	RolePublicViewer    Role = "public_viewer"
)

var Roles = []Role{RoleAdmin, RoleDistrictOfficer, RoleBlockOfficer, RolePublicViewer}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// Officers may write projects, reports and amenities.
var Officers = []Role{RoleAdmin, RoleDistrictOfficer, RoleBlockOfficer}

type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"size:32;not null;default:public_viewer" json:"role"`
	District  string    `gorm:"size:255" json:"district"`
	Block     string    `gorm:"size:255" json:"block"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the only part of a user that is joined into other shapes.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Summary() UserSummary { return UserSummary{ID: u.ID, Username: u.Username} }
