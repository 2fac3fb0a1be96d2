package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores a resume and returns its ID. Content carries the form
// input plus any generated content; aiScore is meaningful only when
// aiGenerated is true.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title string, content json.RawMessage, aiGenerated bool, aiScore int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, content, ai_generated, ai_score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, title, content, aiGenerated, aiScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID. Returns nil without error when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var res Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, ai_generated, ai_score, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&res.ID, &res.UserID, &res.Title, &res.Content, &res.AIGenerated, &res.AIScore, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &res, nil
}

// ListResumes returns all resumes for a user, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, content, ai_generated, ai_score, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var res Resume
		if err := rows.Scan(&res.ID, &res.UserID, &res.Title, &res.Content, &res.AIGenerated, &res.AIScore, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces a resume's title and content.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, title string, content json.RawMessage) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`,
		title, content, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return nil
}

// DeleteResume removes a resume.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// CountAIResumes counts a user's AI-generated resumes, used for free-plan
// quota enforcement.
func (db *DB) CountAIResumes(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE user_id = $1 AND ai_generated`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count AI resumes: %w", err)
	}
	return count, nil
}
