package entities

import "time"

type ReportType string

const (
	ReportProgress    ReportType = "progress"
	ReportCompletion  ReportType = "completion"
	ReportGapAnalysis ReportType = "gap_analysis"
	ReportMonthly     ReportType = "monthly"
)

var ReportTypes = []ReportType{ReportProgress, ReportCompletion, ReportGapAnalysis, ReportMonthly}

func (t ReportType) Valid() bool {
	for _, v := range ReportTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Report struct {
	ID         string     `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID  *string    `gorm:"type:char(36);index" json:"projectId"`
	ReportType ReportType `gorm:"size:32;not null" json:"reportType"`
	Title      string     `gorm:"type:text;not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	FileURL    string     `gorm:"type:text" json:"fileUrl"`
	CreatedBy  string     `gorm:"type:char(36);not null;index" json:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt"`

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"-"`
}
