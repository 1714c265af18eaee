// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and local
// development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/domain/user"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/errs"
)

// Store holds all collections behind a single mutex.
type Store struct {
	mu            sync.RWMutex
	users         map[string]user.User
	usersByEmail  map[string]string
	profiles      map[string]profile.Profile // keyed by userID
	scholarships  map[string]scholarship.Scholarship
	catalogOrder  []string
	applications  map[string]application.Application
	appByOwnerKey map[string]string // userID + "\x00" + scholarship name -> application ID
	appSeq        map[string]int    // insertion order per application ID
	nextSeq       int
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ProfileStore = (*Store)(nil)
var _ storage.ScholarshipStore = (*Store)(nil)
var _ storage.ApplicationStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:         make(map[string]user.User),
		usersByEmail:  make(map[string]string),
		profiles:      make(map[string]profile.Profile),
		scholarships:  make(map[string]scholarship.Scholarship),
		applications:  make(map[string]application.Application),
		appByOwnerKey: make(map[string]string),
		appSeq:        make(map[string]int),
	}
}

// UserStore ------------------------------------------------------------------

func (m *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := m.usersByEmail[email]; exists {
		return user.User{}, errs.ErrAlreadyExists
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = email
	u.CreatedAt = time.Now().UTC()

	m.users[u.ID] = u
	m.usersByEmail[email] = u.ID
	return u, nil
}

func (m *Store) GetUser(_ context.Context, id string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return user.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (m *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usersByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return user.User{}, errs.ErrNotFound
	}
	return m.users[id], nil
}

// ProfileStore ---------------------------------------------------------------

func (m *Store) CreateProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[p.UserID]; exists {
		return profile.Profile{}, errs.ErrAlreadyExists
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *Store) GetProfileByUser(_ context.Context, userID string) (profile.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return profile.Profile{}, errs.ErrNotFound
	}
	return p, nil
}

func (m *Store) UpsertProfile(_ context.Context, userID string, fields profile.Fields) (profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	p, ok := m.profiles[userID]
	if !ok {
		p = profile.Profile{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}
	p.AcademicInfo = fields.AcademicInfo
	p.FinancialInfo = fields.FinancialInfo
	p.AchievementInfo = fields.AchievementInfo
	p.CategoryInfo = fields.CategoryInfo
	p.UpdatedAt = now
	m.profiles[userID] = p
	return p, nil
}

// ScholarshipStore -----------------------------------------------------------

func (m *Store) UpsertScholarship(_ context.Context, s scholarship.Scholarship) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scholarships[s.Name]; exists {
		return nil
	}
	m.scholarships[s.Name] = s
	m.catalogOrder = append(m.catalogOrder, s.Name)
	return nil
}

func (m *Store) ListScholarships(_ context.Context) ([]scholarship.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]scholarship.Scholarship, 0, len(m.catalogOrder))
	for _, name := range m.catalogOrder {
		out = append(out, m.scholarships[name])
	}
	return out, nil
}

func (m *Store) CountScholarships(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scholarships), nil
}

// ApplicationStore -----------------------------------------------------------

func ownerKey(userID, scholarshipName string) string {
	return userID + "\x00" + scholarshipName
}

func (m *Store) CreateApplication(_ context.Context, app application.Application) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ownerKey(app.UserID, app.Scholarship.Name)
	if _, exists := m.appByOwnerKey[key]; exists {
		return application.Application{}, errs.ErrAlreadyExists
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	app.Checklist = cloneChecklist(app.Checklist)

	m.applications[app.ID] = app
	m.appByOwnerKey[key] = app.ID
	m.nextSeq++
	m.appSeq[app.ID] = m.nextSeq
	return cloneApplication(app), nil
}

func (m *Store) ListApplications(_ context.Context, userID string) ([]application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []application.Application
	for _, app := range m.applications {
		if app.UserID == userID {
			out = append(out, cloneApplication(app))
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.appSeq[out[i].ID] < m.appSeq[out[j].ID] })
	return out, nil
}

func (m *Store) UpdateApplicationStatus(_ context.Context, userID, applicationID string, status application.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[applicationID]
	if !ok || app.UserID != userID {
		return errs.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	m.applications[applicationID] = app
	return nil
}

func (m *Store) UpdateChecklistItem(_ context.Context, userID, applicationID, itemID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[applicationID]
	if !ok || app.UserID != userID {
		return errs.ErrNotFound
	}
	for i := range app.Checklist {
		if app.Checklist[i].ID == itemID {
			app.Checklist[i].Completed = completed
			app.UpdatedAt = time.Now().UTC()
			m.applications[applicationID] = app
			return nil
		}
	}
	return errs.ErrNotFound
}

func cloneChecklist(items []application.ChecklistItem) []application.ChecklistItem {
	if items == nil {
		return []application.ChecklistItem{}
	}
	out := make([]application.ChecklistItem, len(items))
	copy(out, items)
	return out
}

func cloneApplication(app application.Application) application.Application {
	app.Checklist = cloneChecklist(app.Checklist)
	return app
}
