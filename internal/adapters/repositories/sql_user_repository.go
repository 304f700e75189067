package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"

	"github.com/google/uuid"
)

// SQL-backed implementation of the UserRepository port.
type SQLUserRepository struct{ DB *sql.DB }

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, verified, latitude, longitude, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var lat, lon sql.NullFloat64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Verified, &lat, &lon, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if lat.Valid && lon.Valid {
		u.Location = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	return &u, nil
}

func (s *SQLUserRepository) Create(ctx context.Context, u *domain.User) error {
	if s.DB == nil {
		return errors.New("sql user repository: DB is nil")
	}

	query := `
	INSERT INTO users (id, name, email, password_hash, verified, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := s.DB.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, u.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("create user: insert: %w", err)
	}

	return nil
}

func (s *SQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *SQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (s *SQLUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "mark user verified", `UPDATE users SET verified = TRUE WHERE id = $1;`, id)
}

func (s *SQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.execOne(ctx, "update password", `UPDATE users SET password_hash = $2 WHERE id = $1;`, id, passwordHash)
}

func (s *SQLUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	UPDATE users SET name = $2
	WHERE id = $1
	RETURNING `+userColumns+`;
	`, id, name)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("update user name %s: %w", id, err)
	}
	return u, nil
}

func (s *SQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1;`, id)
}

// Update the user's location and append a history row in one transaction.
func (s *SQLUserRepository) RecordLocation(
	ctx context.Context,
	id uuid.UUID,
	c domain.Coordinates,
) (_ *domain.User, _ *domain.LocationEntry, err error) {
	defer obs.Time(ctx, "users.RecordLocation")(&err)

	if s.DB == nil {
		return nil, nil, errors.New("sql user repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("record location: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
	UPDATE users SET latitude = $2, longitude = $3
	WHERE id = $1
	RETURNING `+userColumns+`;
	`, id, c.Lat, c.Lon)

	u, err := scanUser(row)
	if err != nil {
		return nil, nil, fmt.Errorf("record location: update user %s: %w", id, err)
	}

	entry := &domain.LocationEntry{ID: uuid.New(), UserID: id, Coordinates: c}
	err = tx.QueryRowContext(ctx, `
	INSERT INTO location_history (id, user_id, latitude, longitude)
	VALUES ($1, $2, $3, $4)
	RETURNING recorded_at;
	`, entry.ID, id, c.Lat, c.Lon).Scan(&entry.RecordedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("record location: insert history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("record location: commit tx: %w", err)
	}

	return u, entry, nil
}

// execOne runs a statement that must affect exactly one user row.
func (s *SQLUserRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	if s.DB == nil {
		return errors.New("sql user repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	return nil
}
