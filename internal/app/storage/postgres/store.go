// Package postgres implements the storage interfaces backed by PostgreSQL.
// Embedded documents (scholarship snapshots, checklists) live in JSONB
// columns; uniqueness invariants are enforced by the schema rather than by
// advisory pre-checks.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/app/domain/user"
	"github.com/scholarai/scholarai/internal/app/storage"
	"github.com/scholarai/scholarai/internal/errs"
)

const uniqueViolation = "23505"

// Store implements the storage interfaces over a *sql.DB handle.
type Store struct {
	db *sql.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ProfileStore = (*Store)(nil)
var _ storage.ScholarshipStore = (*Store)(nil)
var _ storage.ApplicationStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, errs.ErrAlreadyExists
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1
	`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))))
}

func (s *Store) scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, errs.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// --- ProfileStore -----------------------------------------------------------

func (s *Store) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, academic_info, financial_info, achievement_info, category_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.UserID, p.AcademicInfo, p.FinancialInfo, p.AchievementInfo, p.CategoryInfo, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.Profile{}, errs.ErrAlreadyExists
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *Store) GetProfileByUser(ctx context.Context, userID string) (profile.Profile, error) {
	var p profile.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, academic_info, financial_info, achievement_info, category_info, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.AcademicInfo, &p.FinancialInfo, &p.AchievementInfo, &p.CategoryInfo, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, errs.ErrNotFound
	}
	if err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *Store) UpsertProfile(ctx context.Context, userID string, fields profile.Fields) (profile.Profile, error) {
	var p profile.Profile
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, user_id, academic_info, financial_info, achievement_info, category_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			academic_info = EXCLUDED.academic_info,
			financial_info = EXCLUDED.financial_info,
			achievement_info = EXCLUDED.achievement_info,
			category_info = EXCLUDED.category_info,
			updated_at = now()
		RETURNING id, user_id, academic_info, financial_info, achievement_info, category_info, created_at, updated_at
	`, uuid.NewString(), userID, fields.AcademicInfo, fields.FinancialInfo, fields.AchievementInfo, fields.CategoryInfo).
		Scan(&p.ID, &p.UserID, &p.AcademicInfo, &p.FinancialInfo, &p.AchievementInfo, &p.CategoryInfo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// --- ScholarshipStore -------------------------------------------------------

func (s *Store) UpsertScholarship(ctx context.Context, sch scholarship.Scholarship) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scholarships (name, description, amount, deadline, link)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`, sch.Name, sch.Description, sch.Amount, sch.Deadline, sch.Link)
	return err
}

func (s *Store) ListScholarships(ctx context.Context) ([]scholarship.Scholarship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, amount, deadline, link FROM scholarships ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scholarship.Scholarship
	for rows.Next() {
		var sch scholarship.Scholarship
		if err := rows.Scan(&sch.Name, &sch.Description, &sch.Amount, &sch.Deadline, &sch.Link); err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	return out, rows.Err()
}

func (s *Store) CountScholarships(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM scholarships`).Scan(&n)
	return n, err
}

// --- ApplicationStore -------------------------------------------------------

func (s *Store) CreateApplication(ctx context.Context, app application.Application) (application.Application, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Checklist == nil {
		app.Checklist = []application.ChecklistItem{}
	}

	scholarshipJSON, err := json.Marshal(app.Scholarship)
	if err != nil {
		return application.Application{}, err
	}
	checklistJSON, err := json.Marshal(app.Checklist)
	if err != nil {
		return application.Application{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (id, user_id, scholarship_name, scholarship, status, checklist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, app.ID, app.UserID, app.Scholarship.Name, scholarshipJSON, app.Status, checklistJSON, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, errs.ErrAlreadyExists
		}
		return application.Application{}, err
	}
	return app, nil
}

func (s *Store) ListApplications(ctx context.Context, userID string) ([]application.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, scholarship, status, checklist, created_at, updated_at
		FROM applications WHERE user_id = $1 ORDER BY seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []application.Application
	for rows.Next() {
		var app application.Application
		var scholarshipJSON, checklistJSON []byte
		if err := rows.Scan(&app.ID, &app.UserID, &scholarshipJSON, &app.Status, &checklistJSON, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scholarshipJSON, &app.Scholarship); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(checklistJSON, &app.Checklist); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, userID, applicationID string, status application.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, applicationID, userID, status)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

func (s *Store) UpdateChecklistItem(ctx context.Context, userID, applicationID, itemID string, completed bool) error {
	// Single targeted write: the WHERE clause requires the item to be nested
	// in an application owned by the caller, so a zero-row result covers
	// missing application, foreign owner, and unknown item alike.
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET checklist = (
			SELECT jsonb_agg(
				CASE WHEN elem->>'id' = $3
					THEN jsonb_set(elem, '{completed}', to_jsonb($4::boolean))
					ELSE elem
				END ORDER BY ord
			)
			FROM jsonb_array_elements(checklist) WITH ORDINALITY AS items(elem, ord)
		), updated_at = now()
		WHERE id = $1 AND user_id = $2
			AND checklist @> jsonb_build_array(jsonb_build_object('id', $3::text))
	`, applicationID, userID, itemID, completed)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

func requireMatch(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
