// Package storage is the data-access contract between the route layer and
// the database. Handlers only ever see this interface.
//
// Lookups distinguish three outcomes: a value with a nil error (found),
// ErrNotFound (absent), or any other error (the lookup itself failed).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Uvais-khan078/village360/entities"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("invalid reference")
)

type Storage interface {
	UserStore
	VillageStore
	ProjectStore
	ReportStore
	AmenityStore

	DashboardStats(ctx context.Context) (entities.DashboardStats, error)
	Ping(ctx context.Context) error
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, in NewUser) (*entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}

type VillageStore interface {
	ListVillages(ctx context.Context) ([]entities.Village, error)
	GetVillage(ctx context.Context, id string) (*entities.Village, error)
	GetVillageWithAmenities(ctx context.Context, id string) (*entities.VillageWithAmenities, error)
	CreateVillage(ctx context.Context, in NewVillage) (*entities.Village, error)
	UpdateVillage(ctx context.Context, id string, p VillagePatch) (*entities.Village, error)
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]entities.ProjectWithDetails, error)
	GetProject(ctx context.Context, id string) (*entities.ProjectWithDetails, error)
	ListProjectsByVillage(ctx context.Context, villageID string) ([]entities.ProjectWithDetails, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]entities.ProjectWithDetails, error)
	CreateProject(ctx context.Context, in NewProject) (*entities.Project, error)
	UpdateProject(ctx context.Context, id string, p ProjectPatch) (*entities.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type ReportStore interface {
	ListReports(ctx context.Context) ([]entities.Report, error)
	ListReportsByProject(ctx context.Context, projectID string) ([]entities.Report, error)
	CreateReport(ctx context.Context, in NewReport) (*entities.Report, error)
}

type AmenityStore interface {
	ListAmenitiesByVillage(ctx context.Context, villageID string) ([]entities.Amenity, error)
	UpdateAmenity(ctx context.Context, in AmenityUpsert) (*entities.Amenity, error)
}

// NewUser carries an already hashed password. An invalid Role is stored as public_viewer.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Role         entities.Role
	District     string
	Block        string
}

type NewVillage struct {
	Name       string
	District   string
	Block      string
	Latitude   entities.Decimal
	Longitude  entities.Decimal
	Population int
}

// VillagePatch applies only the non-nil fields.
type VillagePatch struct {
	Name       *string
	District   *string
	Block      *string
	Latitude   *entities.Decimal
	Longitude  *entities.Decimal
	Population *int
}

// NewProject: an invalid Status is stored as planning and Progress is clamped to [0,100].
type NewProject struct {
	VillageID   string
	Title       string
	Description string
	Status      entities.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      entities.Decimal
	Progress    int
	CreatedBy   string
}

// CheckDates rejects an end date before the start date. Either may be nil.
func CheckDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return entities.Invalid("End date must not be before start date")
	}
	return nil
}

type ProjectPatch struct {
	VillageID   *string
	Title       *string
	Description *string
	Status      *entities.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *entities.Decimal
	Progress    *int
}

// CheckDates checks the dates a project would have after applying p on top
// of the stored start and end.
func (p ProjectPatch) CheckDates(start, end *time.Time) error {
	if p.StartDate != nil {
		start = p.StartDate
	}
	if p.EndDate != nil {
		end = p.EndDate
	}
	return CheckDates(start, end)
}

// NewReport: an invalid ReportType is stored as progress.
type NewReport struct {
	ProjectID  *string
	ReportType entities.ReportType
	Title      string
	Content    string
	FileURL    string
	CreatedBy  string
}

type AmenityUpsert struct {
	VillageID   string
	AmenityType string
	Available   int
	Required    int
}

func NormalizeRole(r entities.Role) entities.Role {
	if r.Valid() {
		return r
	}
	return entities.RolePublicViewer
}

func NormalizeStatus(s entities.ProjectStatus) entities.ProjectStatus {
	if s.Valid() {
		return s
	}
	return entities.StatusPlanning
}

func NormalizeReportType(t entities.ReportType) entities.ReportType {
	if t.Valid() {
		return t
	}
	return entities.ReportProgress
}
