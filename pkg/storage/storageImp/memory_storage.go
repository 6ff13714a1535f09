package storageImp

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type amenityKey struct{ village, kind string }

// memoryStorage keeps everything in maps behind one lock. It follows the same
// rules as the gorm store: uniqueness, reference checks, clamping and
// cascade/set-null on delete.
type memoryStorage struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	users     map[string]*entities.User
	villages  map[string]*entities.Village
	projects  map[string]*entities.Project
	reports   map[string]*entities.Report
	amenities map[amenityKey]*entities.Amenity

	// insertion order, used to break created_at ties
	order map[string]int64
}

func NewMemory() storage.Storage {
	return &memoryStorage{
		now:       time.Now,
		users:     map[string]*entities.User{},
		villages:  map[string]*entities.Village{},
		projects:  map[string]*entities.Project{},
		reports:   map[string]*entities.Report{},
		amenities: map[amenityKey]*entities.Amenity{},
		order:     map[string]int64{},
	}
}

func (m *memoryStorage) track(id string) {
	m.seq++
	m.order[id] = m.seq
}

// newestFirst orders by created_at DESC, then by reverse insertion.
func (m *memoryStorage) newestFirst(a, b time.Time, ida, idb string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return m.order[ida] > m.order[idb]
}

// --- users ---

func (m *memoryStorage) GetUser(_ context.Context, id string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryStorage) findUser(match func(*entities.User) bool) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memoryStorage) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	return m.findUser(func(u *entities.User) bool { return u.Username == username })
}

func (m *memoryStorage) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	return m.findUser(func(u *entities.User) bool { return u.Email == email })
}

func (m *memoryStorage) CreateUser(_ context.Context, in storage.NewUser) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == in.Username {
			return nil, fmt.Errorf("%w: username %s", storage.ErrConflict, in.Username)
		}
		if u.Email == in.Email {
			return nil, fmt.Errorf("%w: email %s", storage.ErrConflict, in.Email)
		}
	}
	u := &entities.User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.PasswordHash,
		Role:      storage.NormalizeRole(in.Role),
		District:  in.District,
		Block:     in.Block,
		CreatedAt: m.now(),
	}
	m.users[u.ID] = u
	m.track(u.ID)
	cp := *u
	return &cp, nil
}

func (m *memoryStorage) ListUsers(context.Context) ([]entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *memoryStorage) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return storage.ErrNotFound
	}
	for _, p := range m.projects {
		if p.CreatedBy == id {
			return fmt.Errorf("%w: user still owns projects or reports", storage.ErrConflict)
		}
	}
	for _, r := range m.reports {
		if r.CreatedBy == id {
			return fmt.Errorf("%w: user still owns projects or reports", storage.ErrConflict)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *memoryStorage) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

// --- villages ---

func (m *memoryStorage) ListVillages(context.Context) ([]entities.Village, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.Village, 0, len(m.villages))
	for _, v := range m.villages {
		out = append(out, *v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return m.order[out[i].ID] < m.order[out[j].ID]
	})
	return out, nil
}

func (m *memoryStorage) GetVillage(_ context.Context, id string) (*entities.Village, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.villages[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryStorage) GetVillageWithAmenities(ctx context.Context, id string) (*entities.VillageWithAmenities, error) {
	v, err := m.GetVillage(ctx, id)
	if err != nil {
		return nil, err
	}
	am, err := m.ListAmenitiesByVillage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.VillageWithAmenities{Village: *v, Amenities: am}, nil
}

func (m *memoryStorage) CreateVillage(_ context.Context, in storage.NewVillage) (*entities.Village, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &entities.Village{
		ID:         uuid.NewString(),
		Name:       in.Name,
		District:   in.District,
		Block:      in.Block,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Population: in.Population,
		CreatedAt:  m.now(),
	}
	m.villages[v.ID] = v
	m.track(v.ID)
	cp := *v
	return &cp, nil
}

func (m *memoryStorage) UpdateVillage(_ context.Context, id string, p storage.VillagePatch) (*entities.Village, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.villages[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.District != nil {
		v.District = *p.District
	}
	if p.Block != nil {
		v.Block = *p.Block
	}
	if p.Latitude != nil {
		v.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		v.Longitude = *p.Longitude
	}
	if p.Population != nil {
		v.Population = *p.Population
	}
	cp := *v
	return &cp, nil
}

// --- projects ---

// details must be called with the lock held.
func (m *memoryStorage) details(p *entities.Project) entities.ProjectWithDetails {
	var village *entities.Village
	if v, ok := m.villages[p.VillageID]; ok {
		cp := *v
		village = &cp
	}
	var creator *entities.UserSummary
	if u, ok := m.users[p.CreatedBy]; ok {
		s := u.Summary()
		creator = &s
	}
	return entities.NewProjectWithDetails(*p, village, creator)
}

func (m *memoryStorage) listProjects(keep func(*entities.Project) bool) []entities.ProjectWithDetails {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ps := make([]*entities.Project, 0, len(m.projects))
	for _, p := range m.projects {
		if keep(p) {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return m.newestFirst(ps[i].CreatedAt, ps[j].CreatedAt, ps[i].ID, ps[j].ID) })
	out := make([]entities.ProjectWithDetails, 0, len(ps))
	for _, p := range ps {
		out = append(out, m.details(p))
	}
	return out
}

func (m *memoryStorage) ListProjects(context.Context) ([]entities.ProjectWithDetails, error) {
	return m.listProjects(func(*entities.Project) bool { return true }), nil
}

func (m *memoryStorage) ListProjectsByVillage(_ context.Context, villageID string) ([]entities.ProjectWithDetails, error) {
	return m.listProjects(func(p *entities.Project) bool { return p.VillageID == villageID }), nil
}

func (m *memoryStorage) ListProjectsByUser(_ context.Context, userID string) ([]entities.ProjectWithDetails, error) {
	return m.listProjects(func(p *entities.Project) bool { return p.CreatedBy == userID }), nil
}

func (m *memoryStorage) GetProject(_ context.Context, id string) (*entities.ProjectWithDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	d := m.details(p)
	return &d, nil
}

func (m *memoryStorage) CreateProject(_ context.Context, in storage.NewProject) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := storage.CheckDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if _, ok := m.villages[in.VillageID]; !ok {
		return nil, fmt.Errorf("%w: village %s does not exist", storage.ErrInvalidReference, in.VillageID)
	}
	if _, ok := m.users[in.CreatedBy]; !ok {
		return nil, fmt.Errorf("%w: user %s does not exist", storage.ErrInvalidReference, in.CreatedBy)
	}
	now := m.now()
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
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.projects[p.ID] = p
	m.track(p.ID)
	cp := *p
	return &cp, nil
}

func (m *memoryStorage) UpdateProject(_ context.Context, id string, patch storage.ProjectPatch) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if err := patch.CheckDates(p.StartDate, p.EndDate); err != nil {
		return nil, err
	}
	if patch.VillageID != nil {
		if _, ok := m.villages[*patch.VillageID]; !ok {
			return nil, fmt.Errorf("%w: village %s does not exist", storage.ErrInvalidReference, *patch.VillageID)
		}
		p.VillageID = *patch.VillageID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = storage.NormalizeStatus(*patch.Status)
	}
	if patch.StartDate != nil {
		d := *patch.StartDate
		p.StartDate = &d
	}
	if patch.EndDate != nil {
		d := *patch.EndDate
		p.EndDate = &d
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	if patch.Progress != nil {
		p.Progress = entities.ClampProgress(*patch.Progress)
	}
	p.UpdatedAt = m.now()
	cp := *p
	return &cp, nil
}

func (m *memoryStorage) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.projects, id)
	for _, r := range m.reports {
		if r.ProjectID != nil && *r.ProjectID == id {
			r.ProjectID = nil
		}
	}
	return nil
}

// --- reports ---

func (m *memoryStorage) listReports(keep func(*entities.Report) bool) []entities.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.Report, 0, len(m.reports))
	for _, r := range m.reports {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out
}

func (m *memoryStorage) ListReports(context.Context) ([]entities.Report, error) {
	return m.listReports(func(*entities.Report) bool { return true }), nil
}

func (m *memoryStorage) ListReportsByProject(_ context.Context, projectID string) ([]entities.Report, error) {
	return m.listReports(func(r *entities.Report) bool { return r.ProjectID != nil && *r.ProjectID == projectID }), nil
}

func (m *memoryStorage) CreateReport(_ context.Context, in storage.NewReport) (*entities.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var projectID *string
	if in.ProjectID != nil && *in.ProjectID != "" {
		if _, ok := m.projects[*in.ProjectID]; !ok {
			return nil, fmt.Errorf("%w: project %s does not exist", storage.ErrInvalidReference, *in.ProjectID)
		}
		id := *in.ProjectID
		projectID = &id
	}
	if _, ok := m.users[in.CreatedBy]; !ok {
		return nil, fmt.Errorf("%w: user %s does not exist", storage.ErrInvalidReference, in.CreatedBy)
	}
	r := &entities.Report{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		ReportType: storage.NormalizeReportType(in.ReportType),
		Title:      in.Title,
		Content:    in.Content,
		FileURL:    in.FileURL,
		CreatedBy:  in.CreatedBy,
		CreatedAt:  m.now(),
	}
	m.reports[r.ID] = r
	m.track(r.ID)
	cp := *r
	return &cp, nil
}

// --- amenities ---

func (m *memoryStorage) ListAmenitiesByVillage(_ context.Context, villageID string) ([]entities.Amenity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []entities.Amenity{}
	for k, a := range m.amenities {
		if k.village == villageID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AmenityType < out[j].AmenityType })
	return out, nil
}

func (m *memoryStorage) UpdateAmenity(_ context.Context, in storage.AmenityUpsert) (*entities.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.villages[in.VillageID]; !ok {
		return nil, fmt.Errorf("%w: village %s does not exist", storage.ErrInvalidReference, in.VillageID)
	}
	k := amenityKey{in.VillageID, in.AmenityType}
	a, ok := m.amenities[k]
	if !ok {
		a = &entities.Amenity{VillageID: in.VillageID, AmenityType: in.AmenityType}
		m.amenities[k] = a
	}
	a.Available = in.Available
	a.Required = in.Required
	a.UpdatedAt = m.now()
	cp := *a
	return &cp, nil
}

// --- dashboard ---

func (m *memoryStorage) DashboardStats(context.Context) (entities.DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := entities.DashboardStats{TotalVillages: int64(len(m.villages))}
	for _, p := range m.projects {
		switch p.Status {
		case entities.StatusOngoing:
			st.ActiveProjects++
		case entities.StatusCompleted:
			st.CompletedProjects++
		case entities.StatusDelayed:
			st.DelayedProjects++
		}
	}
	return st, nil
}

func (m *memoryStorage) Ping(context.Context) error { return nil }
