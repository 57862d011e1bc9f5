package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

const commentColumns = `id, user_id, question_id, answer_id, content, vote, is_active, created_at, updated_at`

// CommentRepo implements domain.CommentRepository backed by PostgreSQL.
type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) CreateOnQuestion(ctx context.Context, questionID, userID int64, content string) (*domain.Comment, error) {
	return r.create(ctx, userID, content, "questions", domain.ErrQuestionNotFound, &questionID, nil)
}

func (r *CommentRepo) CreateOnAnswer(ctx context.Context, answerID, userID int64, content string) (*domain.Comment, error) {
	return r.create(ctx, userID, content, "answers", domain.ErrAnswerNotFound, nil, &answerID)
}

func (r *CommentRepo) create(ctx context.Context, userID int64, content, parentTable string, parentMissing error, questionID, answerID *int64) (*domain.Comment, error) {
	parentID := questionID
	if parentID == nil {
		parentID = answerID
	}

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+parentTable+` WHERE id = $1 AND is_active)`, *parentID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check parent: %w", err)
	}
	if !exists {
		return nil, parentMissing
	}

	comment := domain.Comment{UserID: userID, QuestionID: questionID, AnswerID: answerID, Content: content, IsActive: true}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO comments (user_id, question_id, answer_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, userID, questionID, answerID, content).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &comment, nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND is_active`, id,
	).Scan(
		&comment.ID, &comment.UserID, &comment.QuestionID, &comment.AnswerID,
		&comment.Content, &comment.Vote, &comment.IsActive,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &comment, nil
}
