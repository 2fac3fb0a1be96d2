package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCoverLetter stores a cover letter and returns its ID.
func (db *DB) CreateCoverLetter(ctx context.Context, userID uuid.UUID, title string, content json.RawMessage) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cover_letters (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, title, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create cover letter: %w", err)
	}
	return id, nil
}

// GetCoverLetter retrieves a cover letter by ID. Returns nil without error
// when not found.
func (db *DB) GetCoverLetter(ctx context.Context, id uuid.UUID) (*CoverLetter, error) {
	var cl CoverLetter
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM cover_letters WHERE id = $1`,
		id,
	).Scan(&cl.ID, &cl.UserID, &cl.Title, &cl.Content, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	return &cl, nil
}

// ListCoverLetters returns all cover letters for a user, newest first.
func (db *DB) ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]CoverLetter, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM cover_letters WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	defer rows.Close()

	var letters []CoverLetter
	for rows.Next() {
		var cl CoverLetter
		if err := rows.Scan(&cl.ID, &cl.UserID, &cl.Title, &cl.Content, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cover letter: %w", err)
		}
		letters = append(letters, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cover letters: %w", err)
	}
	return letters, nil
}

// DeleteCoverLetter removes a cover letter.
func (db *DB) DeleteCoverLetter(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM cover_letters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	return nil
}
