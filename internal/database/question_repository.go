package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	"github.com/wafflestudio18-5/team4-server/internal/metrics"
)

const questionColumns = `id, user_id, title, content, vote, view_count, has_accepted, is_active, created_at, updated_at`

// QuestionRepo implements domain.QuestionRepository backed by PostgreSQL.
type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

// Create inserts the question, attaches its tags, and applies the
// tagged-question reputation bonus to the author, all in one transaction.
func (r *QuestionRepo) Create(ctx context.Context, userID int64, title, content string, tags []string) (*domain.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	question := domain.Question{UserID: userID, Title: title, Content: content, IsActive: true, Tags: tags}
	err = tx.QueryRow(ctx, `
		INSERT INTO questions (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, userID, title, content).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	for _, tag := range tags {
		var tagID int64
		// DO UPDATE instead of DO NOTHING so RETURNING always yields the id.
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, tag).Scan(&tagID)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", tag, err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO question_tags (question_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, question.ID, tagID); err != nil {
			return nil, fmt.Errorf("failed to attach tag %q: %w", tag, err)
		}
	}

	if len(tags) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE user_profiles SET reputation = reputation + $1 WHERE user_id = $2
		`, domain.RepTaggedQuestionCreated, userID); err != nil {
			return nil, fmt.Errorf("failed to apply question reputation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if len(tags) > 0 {
		metrics.ReputationEventsTotal.WithLabelValues("tagged_question_created").Inc()
	}
	return &question, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1 AND is_active`, id,
	).Scan(
		&question.ID, &question.UserID, &question.Title, &question.Content,
		&question.Vote, &question.ViewCount, &question.HasAccepted, &question.IsActive,
		&question.CreatedAt, &question.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan question: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT t.name
		FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		WHERE qt.question_id = $1
		ORDER BY t.name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	question.Tags, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags: %w", err)
	}

	return &question, nil
}

func (r *QuestionRepo) SoftDelete(ctx context.Context, id, callerID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var ownerID int64
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM questions WHERE id = $1 AND is_active FOR UPDATE`, id,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuestionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock question: %w", err)
	}

	if ownerID != callerID {
		return domain.ErrNotOwner
	}

	if _, err := tx.Exec(ctx,
		`UPDATE questions SET is_active = FALSE, updated_at = now() WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("failed to deactivate question: %w", err)
	}

	return tx.Commit(ctx)
}

// SetBookmark flips the bookmark flag on the caller's ledger row for the
// question, creating the row with a neutral rating when absent.
func (r *QuestionRepo) SetBookmark(ctx context.Context, userID, questionID int64, bookmarked bool) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1 AND is_active)`, questionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return domain.ErrQuestionNotFound
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO user_questions (user_id, question_id, bookmark)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, question_id) DO UPDATE SET bookmark = EXCLUDED.bookmark, updated_at = now()
	`, userID, questionID, bookmarked)
	if err != nil {
		return fmt.Errorf("failed to set bookmark: %w", err)
	}
	return nil
}
