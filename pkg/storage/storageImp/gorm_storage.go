package storageImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type gormStorage struct{ db *gorm.DB }

// NewGorm is the production store. It only uses dialect-neutral gorm calls so
// the same code runs on MySQL and SQLite.
func NewGorm(db *gorm.DB) storage.Storage { return &gormStorage{db} }

// FromDB picks the memory store when there is no database (DB_DRIVER=memory).
func FromDB(db *gorm.DB) storage.Storage {
	if db == nil {
		return NewMemory()
	}
	return NewGorm(db)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", storage.ErrInvalidReference, err)
	}
	return err
}

func first[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.Where(query, args...).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *gormStorage) with(ctx context.Context) *gorm.DB { return s.db.WithContext(ctx) }

func (s *gormStorage) mustExist(ctx context.Context, model any, what, id string) error {
	var n int64
	if err := s.with(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s does not exist", storage.ErrInvalidReference, what, id)
	}
	return nil
}

// --- users ---

func (s *gormStorage) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return first[entities.User](s.with(ctx), "id = ?", id)
}

func (s *gormStorage) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return first[entities.User](s.with(ctx), "username = ?", username)
}

func (s *gormStorage) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return first[entities.User](s.with(ctx), "email = ?", email)
}

func (s *gormStorage) CreateUser(ctx context.Context, in storage.NewUser) (*entities.User, error) {
	u := &entities.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Email:    in.Email,
		Password: in.PasswordHash,
		Role:     storage.NormalizeRole(in.Role),
		District: in.District,
		Block:    in.Block,
	}
	if err := s.with(ctx).Create(u).Error; err != nil {
		return nil, translate(err)
	}
	return s.GetUser(ctx, u.ID)
}

func (s *gormStorage) ListUsers(ctx context.Context) ([]entities.User, error) {
	var out []entities.User
	return out, translate(s.with(ctx).Order("created_at ASC").Find(&out).Error)
}

func (s *gormStorage) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	var owned int64
	if err := s.with(ctx).Model(&entities.Project{}).Where("created_by = ?", id).Count(&owned).Error; err != nil {
		return translate(err)
	}
	if owned == 0 {
		if err := s.with(ctx).Model(&entities.Report{}).Where("created_by = ?", id).Count(&owned).Error; err != nil {
			return translate(err)
		}
	}
	if owned > 0 {
		return fmt.Errorf("%w: user still owns projects or reports", storage.ErrConflict)
	}
	res := s.with(ctx).Delete(&entities.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *gormStorage) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return translate(s.with(ctx).Model(&entities.User{}).Where("id = ?", id).Update("password", passwordHash).Error)
}

// --- villages ---

func (s *gormStorage) ListVillages(ctx context.Context) ([]entities.Village, error) {
	var out []entities.Village
	return out, translate(s.with(ctx).Order("name ASC").Find(&out).Error)
}

func (s *gormStorage) GetVillage(ctx context.Context, id string) (*entities.Village, error) {
	return first[entities.Village](s.with(ctx), "id = ?", id)
}

func (s *gormStorage) GetVillageWithAmenities(ctx context.Context, id string) (*entities.VillageWithAmenities, error) {
	v, err := s.GetVillage(ctx, id)
	if err != nil {
		return nil, err
	}
	am, err := s.ListAmenitiesByVillage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.VillageWithAmenities{Village: *v, Amenities: am}, nil
}

func (s *gormStorage) CreateVillage(ctx context.Context, in storage.NewVillage) (*entities.Village, error) {
	v := &entities.Village{
		ID:         uuid.NewString(),
		Name:       in.Name,
		District:   in.District,
		Block:      in.Block,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Population: in.Population,
	}
	if err := s.with(ctx).Create(v).Error; err != nil {
		return nil, translate(err)
	}
	return s.GetVillage(ctx, v.ID)
}

func (s *gormStorage) UpdateVillage(ctx context.Context, id string, p storage.VillagePatch) (*entities.Village, error) {
	if _, err := s.GetVillage(ctx, id); err != nil {
		return nil, err
	}
	upd := map[string]any{}
	if p.Name != nil {
		upd["name"] = *p.Name
	}
	if p.District != nil {
		upd["district"] = *p.District
	}
	if p.Block != nil {
		upd["block"] = *p.Block
	}
	if p.Latitude != nil {
		upd["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		upd["longitude"] = *p.Longitude
	}
	if p.Population != nil {
		upd["population"] = *p.Population
	}
	if len(upd) > 0 {
		if err := s.with(ctx).Model(&entities.Village{}).Where("id = ?", id).Updates(upd).Error; err != nil {
			return nil, translate(err)
		}
	}
	return s.GetVillage(ctx, id)
}

// --- projects ---

func (s *gormStorage) detailed(ctx context.Context) *gorm.DB {
	return s.with(ctx).
		Preload("Village").
		Preload("Creator", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

func toDetails(p entities.Project) entities.ProjectWithDetails {
	var creator *entities.UserSummary
	if p.Creator != nil {
		c := p.Creator.Summary()
		creator = &c
	}
	return entities.NewProjectWithDetails(p, p.Village, creator)
}

func (s *gormStorage) listDetailed(q *gorm.DB) ([]entities.ProjectWithDetails, error) {
	var ps []entities.Project
	if err := q.Order("created_at DESC").Find(&ps).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]entities.ProjectWithDetails, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDetails(p))
	}
	return out, nil
}

func (s *gormStorage) ListProjects(ctx context.Context) ([]entities.ProjectWithDetails, error) {
	return s.listDetailed(s.detailed(ctx))
}

func (s *gormStorage) ListProjectsByVillage(ctx context.Context, villageID string) ([]entities.ProjectWithDetails, error) {
	return s.listDetailed(s.detailed(ctx).Where("village_id = ?", villageID))
}

func (s *gormStorage) ListProjectsByUser(ctx context.Context, userID string) ([]entities.ProjectWithDetails, error) {
	return s.listDetailed(s.detailed(ctx).Where("created_by = ?", userID))
}

func (s *gormStorage) GetProject(ctx context.Context, id string) (*entities.ProjectWithDetails, error) {
	p, err := first[entities.Project](s.detailed(ctx), "id = ?", id)
	if err != nil {
		return nil, err
	}
	d := toDetails(*p)
	return &d, nil
}

func (s *gormStorage) CreateProject(ctx context.Context, in storage.NewProject) (*entities.Project, error) {
	if err := storage.CheckDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, &entities.Village{}, "village", in.VillageID); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, &entities.User{}, "user", in.CreatedBy); err != nil {
		return nil, err
	}
	p := &entities.Project{
		ID:          uuid.NewString(),
		VillageID:   in.VillageID,
		Title:       in.Title,
		Description: in.Description,
		Status:      storage.NormalizeStatus(in.Status),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
		Progress:    entities.ClampProgress(in.Progress),
		CreatedBy:   in.CreatedBy,
	}
	if err := s.with(ctx).Create(p).Error; err != nil {
		return nil, translate(err)
	}
	return first[entities.Project](s.with(ctx), "id = ?", p.ID)
}

func (s *gormStorage) UpdateProject(ctx context.Context, id string, p storage.ProjectPatch) (*entities.Project, error) {
	cur, err := first[entities.Project](s.with(ctx), "id = ?", id)
	if err != nil {
		return nil, err
	}
	if err := p.CheckDates(cur.StartDate, cur.EndDate); err != nil {
		return nil, err
	}
	upd := map[string]any{"updated_at": time.Now()}
	if p.VillageID != nil {
		if err := s.mustExist(ctx, &entities.Village{}, "village", *p.VillageID); err != nil {
			return nil, err
		}
		upd["village_id"] = *p.VillageID
	}
	if p.Title != nil {
		upd["title"] = *p.Title
	}
	if p.Description != nil {
		upd["description"] = *p.Description
	}
	if p.Status != nil {
		upd["status"] = storage.NormalizeStatus(*p.Status)
	}
	if p.StartDate != nil {
		upd["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		upd["end_date"] = *p.EndDate
	}
	if p.Budget != nil {
		upd["budget"] = *p.Budget
	}
	if p.Progress != nil {
		upd["progress"] = entities.ClampProgress(*p.Progress)
	}
	if err := s.with(ctx).Model(&entities.Project{}).Where("id = ?", id).Updates(upd).Error; err != nil {
		return nil, translate(err)
	}
	return first[entities.Project](s.with(ctx), "id = ?", id)
}

func (s *gormStorage) DeleteProject(ctx context.Context, id string) error {
	res := s.with(ctx).Delete(&entities.Project{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- reports ---

func (s *gormStorage) ListReports(ctx context.Context) ([]entities.Report, error) {
	var out []entities.Report
	return out, translate(s.with(ctx).Order("created_at DESC").Find(&out).Error)
}

func (s *gormStorage) ListReportsByProject(ctx context.Context, projectID string) ([]entities.Report, error) {
	var out []entities.Report
	return out, translate(s.with(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error)
}

func (s *gormStorage) CreateReport(ctx context.Context, in storage.NewReport) (*entities.Report, error) {
	projectID := in.ProjectID
	if projectID != nil && *projectID == "" {
		projectID = nil
	}
	if projectID != nil {
		if err := s.mustExist(ctx, &entities.Project{}, "project", *projectID); err != nil {
			return nil, err
		}
	}
	if err := s.mustExist(ctx, &entities.User{}, "user", in.CreatedBy); err != nil {
		return nil, err
	}
	r := &entities.Report{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		ReportType: storage.NormalizeReportType(in.ReportType),
		Title:      in.Title,
		Content:    in.Content,
		FileURL:    in.FileURL,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.with(ctx).Create(r).Error; err != nil {
		return nil, translate(err)
	}
	return first[entities.Report](s.with(ctx), "id = ?", r.ID)
}

// --- amenities ---

func (s *gormStorage) ListAmenitiesByVillage(ctx context.Context, villageID string) ([]entities.Amenity, error) {
	var out []entities.Amenity
	return out, translate(s.with(ctx).Where("village_id = ?", villageID).Order("amenity_type ASC").Find(&out).Error)
}

// UpdateAmenity relies on the store's upsert; the write and the read-back are
// separate round trips.
func (s *gormStorage) UpdateAmenity(ctx context.Context, in storage.AmenityUpsert) (*entities.Amenity, error) {
	if err := s.mustExist(ctx, &entities.Village{}, "village", in.VillageID); err != nil {
		return nil, err
	}
	now := time.Now()
	row := entities.Amenity{
		VillageID:   in.VillageID,
		AmenityType: in.AmenityType,
		Available:   in.Available,
		Required:    in.Required,
		UpdatedAt:   now,
	}
	err := s.with(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "village_id"}, {Name: "amenity_type"}},
		DoUpdates: clause.Assignments(map[string]any{
			"available":  in.Available,
			"required":   in.Required,
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return first[entities.Amenity](s.with(ctx), "village_id = ? AND amenity_type = ?", in.VillageID, in.AmenityType)
}

// --- dashboard ---

func (s *gormStorage) DashboardStats(ctx context.Context) (entities.DashboardStats, error) {
	var st entities.DashboardStats
	if err := s.with(ctx).Model(&entities.Village{}).Count(&st.TotalVillages).Error; err != nil {
		return st, translate(err)
	}
	counts := []struct {
		status entities.ProjectStatus
		dst    *int64
	}{
		{entities.StatusOngoing, &st.ActiveProjects},
		{entities.StatusCompleted, &st.CompletedProjects},
		{entities.StatusDelayed, &st.DelayedProjects},
	}
	for _, c := range counts {
		if err := s.with(ctx).Model(&entities.Project{}).Where("status = ?", c.status).Count(c.dst).Error; err != nil {
			return st, translate(err)
		}
	}
	return st, nil
}

func (s *gormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
