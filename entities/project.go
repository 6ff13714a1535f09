package entities

import "time"

type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusOngoing   ProjectStatus = "ongoing"
	StatusCompleted ProjectStatus = "completed"
	StatusDelayed   ProjectStatus = "delayed"
	StatusCancelled ProjectStatus = "cancelled"
)

var ProjectStatuses = []ProjectStatus{StatusPlanning, StatusOngoing, StatusCompleted, StatusDelayed, StatusCancelled}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Project struct {
	ID          string        `gorm:"type:char(36);primaryKey" json:"id"`
	VillageID   string        `gorm:"type:char(36);not null;index" json:"villageId"`
	Title       string        `gorm:"type:text;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      ProjectStatus `gorm:"size:32;not null;default:planning;index" json:"status"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Budget      Decimal       `gorm:"type:decimal(12,2);default:0" json:"budget"`
	Progress    int           `gorm:"default:0" json:"progress"`
	CreatedBy   string        `gorm:"type:char(36);not null;index" json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Village *Village `gorm:"foreignKey:VillageID;constraint:OnDelete:CASCADE" json:"-"`
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"-"`
}

// ProjectWithDetails is the denormalized list/detail shape. The creator is
// reduced to UserSummary so no credential field can leak through a join.
type ProjectWithDetails struct {
	ID          string        `json:"id"`
	VillageID   string        `json:"villageId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Budget      Decimal       `json:"budget"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Village     *Village      `json:"village"`
	CreatedBy   *UserSummary  `json:"createdBy"`
}

func NewProjectWithDetails(p Project, v *Village, creator *UserSummary) ProjectWithDetails {
	return ProjectWithDetails{
		ID: p.ID, VillageID: p.VillageID, Title: p.Title, Description: p.Description,
		Status: p.Status, StartDate: p.StartDate, EndDate: p.EndDate, Budget: p.Budget,
		Progress: p.Progress, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		Village: v, CreatedBy: creator,
	}
}

func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
