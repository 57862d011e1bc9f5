package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	"github.com/wafflestudio18-5/team4-server/internal/metrics"
	"github.com/wafflestudio18-5/team4-server/internal/platform/retry"
)

// ratingTarget describes one ratable kind: the table holding the vote total
// and the ledger table holding the per-user entries. The rate operation is
// written once against this descriptor instead of three times.
type ratingTarget struct {
	kind     domain.TargetKind
	table    string
	ledger   string
	fkColumn string
	notFound error
}

var ratingTargets = map[domain.TargetKind]ratingTarget{
	domain.KindQuestion: {domain.KindQuestion, "questions", "user_questions", "question_id", domain.ErrQuestionNotFound},
	domain.KindAnswer:   {domain.KindAnswer, "answers", "user_answers", "answer_id", domain.ErrAnswerNotFound},
	domain.KindComment:  {domain.KindComment, "comments", "user_comments", "comment_id", domain.ErrCommentNotFound},
}

// targetRow adapts a locked row to the domain's Votable interface.
type targetRow struct {
	ownerID int64
	vote    int
}

func (t *targetRow) Owner() int64      { return t.ownerID }
func (t *targetRow) VoteTotal() int    { return t.vote }
func (t *targetRow) AddVote(delta int) { t.vote += delta }

// RatingRepo implements domain.RatingRepository backed by PostgreSQL.
type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// Rate applies value as the rater's new authoritative rating for the target
// and moves the target's vote total by the difference, atomically. The
// target row is locked FOR UPDATE for the duration, which serializes
// concurrent raters of the same target; serialization conflicts retry a
// bounded number of times before surfacing.
func (r *RatingRepo) Rate(ctx context.Context, raterID int64, kind domain.TargetKind, targetID int64, value domain.Rating) (*domain.RateResult, error) {
	target, ok := ratingTargets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown target kind %q", kind)
	}

	result, err := retry.Do(ctx, txRetryPolicy("rate_"+string(kind)), classifyTxError, func() (*domain.RateResult, error) {
		return r.rateOnce(ctx, target, raterID, targetID, value)
	})
	if err != nil {
		return nil, err
	}

	metrics.RatingsTotal.WithLabelValues(string(kind), strconv.Itoa(int(value))).Inc()
	return result, nil
}

func (r *RatingRepo) rateOnce(ctx context.Context, target ratingTarget, raterID, targetID int64, value domain.Rating) (*domain.RateResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// Lock the target row; this is the per-target serialization point.
	var row targetRow
	err = tx.QueryRow(ctx,
		`SELECT user_id, vote FROM `+target.table+` WHERE id = $1 AND is_active FOR UPDATE`,
		targetID,
	).Scan(&row.ownerID, &row.vote)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, target.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", target.kind, err)
	}

	// Lookup-or-default-neutral: a rater without a ledger row holds an
	// implicit neutral rating.
	current := domain.RatingNeutral
	err = tx.QueryRow(ctx,
		`SELECT rating FROM `+target.ledger+` WHERE user_id = $1 AND `+target.fkColumn+` = $2`,
		raterID, targetID,
	).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read rating entry: %w", err)
	}

	entry := &domain.RatingEntry{UserID: raterID, Kind: target.kind, TargetID: targetID, Rating: current}
	result, err := domain.ApplyRating(&row, entry, value)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE `+target.table+` SET vote = $1, updated_at = now() WHERE id = $2`,
		row.vote, targetID,
	); err != nil {
		return nil, fmt.Errorf("failed to update vote total: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO `+target.ledger+` (user_id, `+target.fkColumn+`, rating)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, `+target.fkColumn+`) DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()`,
		raterID, targetID, int16(entry.Rating),
	); err != nil {
		return nil, fmt.Errorf("failed to upsert rating entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}
