package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	"github.com/wafflestudio18-5/team4-server/internal/metrics"
	"github.com/wafflestudio18-5/team4-server/internal/platform/retry"
)

const answerColumns = `id, question_id, user_id, content, vote, is_accepted, is_active, created_at, updated_at`

// AnswerRepo implements domain.AnswerRepository backed by PostgreSQL.
type AnswerRepo struct {
	pool *pgxpool.Pool
}

func NewAnswerRepo(pool *pgxpool.Pool) *AnswerRepo {
	return &AnswerRepo{pool: pool}
}

func (r *AnswerRepo) Create(ctx context.Context, questionID, userID int64, content string) (*domain.Answer, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1 AND is_active)`, questionID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return nil, domain.ErrQuestionNotFound
	}

	answer := domain.Answer{QuestionID: questionID, UserID: userID, Content: content, IsActive: true}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO answers (question_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, questionID, userID, content).Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	return &answer, nil
}

func (r *AnswerRepo) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	var answer domain.Answer
	err := r.pool.QueryRow(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = $1 AND is_active`, id,
	).Scan(
		&answer.ID, &answer.QuestionID, &answer.UserID, &answer.Content,
		&answer.Vote, &answer.IsAccepted, &answer.IsActive,
		&answer.CreatedAt, &answer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan answer: %w", err)
	}
	return &answer, nil
}

func (r *AnswerRepo) SoftDelete(ctx context.Context, id, callerID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var ownerID int64
	var isAccepted bool
	err = tx.QueryRow(ctx,
		`SELECT user_id, is_accepted FROM answers WHERE id = $1 AND is_active FOR UPDATE`, id,
	).Scan(&ownerID, &isAccepted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAnswerNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock answer: %w", err)
	}

	if ownerID != callerID {
		return domain.ErrNotOwner
	}
	if isAccepted {
		return domain.ErrAnswerAccepted
	}

	if _, err := tx.Exec(ctx,
		`UPDATE answers SET is_active = FALSE, updated_at = now() WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("failed to deactivate answer: %w", err)
	}

	return tx.Commit(ctx)
}

// Accept runs the NoAccepted -> HasAccepted transition. The question row is
// locked FOR UPDATE, so at most one acceptance per question can be in flight;
// the flag pair and both reputation deltas commit together or not at all.
func (r *AnswerRepo) Accept(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	result, err := retry.Do(ctx, txRetryPolicy("accept"), classifyTxError, func() (*domain.AcceptionResult, error) {
		return r.transition(ctx, answerID, callerID, domain.Accept)
	})
	if err != nil {
		return nil, err
	}
	metrics.AcceptanceTransitionsTotal.WithLabelValues("accept").Inc()
	metrics.ReputationEventsTotal.WithLabelValues("answer_accepted").Inc()
	return result, nil
}

// Unaccept runs the inverse transition with the inverse reputation deltas.
func (r *AnswerRepo) Unaccept(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	result, err := retry.Do(ctx, txRetryPolicy("unaccept"), classifyTxError, func() (*domain.AcceptionResult, error) {
		return r.transition(ctx, answerID, callerID, domain.Unaccept)
	})
	if err != nil {
		return nil, err
	}
	metrics.AcceptanceTransitionsTotal.WithLabelValues("unaccept").Inc()
	metrics.ReputationEventsTotal.WithLabelValues("answer_unaccepted").Inc()
	return result, nil
}

type transitionFunc func(q *domain.Question, a *domain.Answer, callerID int64) ([]domain.ReputationEvent, error)

func (r *AnswerRepo) transition(ctx context.Context, answerID, callerID int64, apply transitionFunc) (*domain.AcceptionResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var question domain.Question
	var answer domain.Answer
	err = tx.QueryRow(ctx, `
		SELECT a.id, a.question_id, a.user_id, a.is_accepted,
		       q.id, q.user_id, q.has_accepted
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.id = $1 AND a.is_active AND q.is_active
		FOR UPDATE OF a, q
	`, answerID).Scan(
		&answer.ID, &answer.QuestionID, &answer.UserID, &answer.IsAccepted,
		&question.ID, &question.UserID, &question.HasAccepted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock answer and question: %w", err)
	}

	events, err := apply(&question, &answer, callerID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE answers SET is_accepted = $1, updated_at = now() WHERE id = $2`,
		answer.IsAccepted, answer.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update answer flag: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE questions SET has_accepted = $1, updated_at = now() WHERE id = $2`,
		question.HasAccepted, question.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update question flag: %w", err)
	}

	for _, event := range events {
		if _, err := tx.Exec(ctx,
			`UPDATE user_profiles SET reputation = reputation + $1 WHERE user_id = $2`,
			event.Delta, event.UserID,
		); err != nil {
			return nil, fmt.Errorf("failed to adjust reputation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return domain.Acception(&question, &answer), nil
}
