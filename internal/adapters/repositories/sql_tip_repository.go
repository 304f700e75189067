package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"safecity-service/internal/domain"

	"github.com/google/uuid"
)

// SQL-backed implementation of the TipRepository port.
type SQLTipRepository struct{ DB *sql.DB }

func NewSQLTipRepository(db *sql.DB) *SQLTipRepository {
	return &SQLTipRepository{DB: db}
}

func (s *SQLTipRepository) Create(ctx context.Context, tip *domain.SafetyTip) error {
	if s.DB == nil {
		return errors.New("sql tip repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO safety_tips (id, user_id, tip, created_at)
	VALUES ($1, $2, $3, $4);
	`, tip.ID, tip.UserID, tip.Tip, tip.CreatedAt)
	if err != nil {
		return fmt.Errorf("create tip: insert: %w", err)
	}
	return nil
}

// Return the user's tips, newest first.
func (s *SQLTipRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SafetyTip, error) {
	if s.DB == nil {
		return nil, errors.New("sql tip repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, user_id, tip, created_at
	FROM safety_tips
	WHERE user_id = $1
	ORDER BY created_at DESC;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tips: query safety_tips table: %w", err)
	}
	defer rows.Close()

	tips := make([]domain.SafetyTip, 0, 16)
	for rows.Next() {
		var t domain.SafetyTip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Tip, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("list tips: scan row: %w", err)
		}
		tips = append(tips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tips: row iteration: %w", err)
	}

	return tips, nil
}

func (s *SQLTipRepository) Update(ctx context.Context, userID, tipID uuid.UUID, text string) (*domain.SafetyTip, error) {
	if s.DB == nil {
		return nil, errors.New("sql tip repository: DB is nil")
	}

	var t domain.SafetyTip
	err := s.DB.QueryRowContext(ctx, `
	UPDATE safety_tips SET tip = $3
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, tip, created_at;
	`, tipID, userID, text).Scan(&t.ID, &t.UserID, &t.Tip, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tip: %w", err)
	}

	return &t, nil
}

func (s *SQLTipRepository) Delete(ctx context.Context, userID, tipID uuid.UUID) error {
	if s.DB == nil {
		return errors.New("sql tip repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM safety_tips WHERE id = $1 AND user_id = $2;`, tipID, userID)
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tip: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
