package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agneltms/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository - интерфейс для работы с комментариями к разделам.
type CommentRepository interface {
	CreateComment(ctx context.Context, proposalId, sectionId, userId string, commentReq models.CommentRequest) (*models.Comment, error)
	GetCommentByID(ctx context.Context, commentId string) (*models.Comment, error)
	ResolveComment(ctx context.Context, commentId, resolvedBy string, resolvedAt time.Time) (*models.Comment, error)
	ListComments(ctx context.Context, proposalId, sectionId string) ([]models.Comment, error)
}

// PostgresCommentRepository - реализация CommentRepository для базы данных.
type PostgresCommentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCommentRepository создает новый экземпляр PostgresCommentRepository.
func NewPostgresCommentRepository(db *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{DB: db}
}

const commentColumns = `id, proposal_id, section_id, user_id, parent_id, text, anchor_start, anchor_end, anchor_quote, is_resolved, resolved_by, resolved_at, created_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	var anchorStart, anchorEnd *int
	var anchorQuote *string
	err := row.Scan(
		&c.ID,
		&c.ProposalID,
		&c.SectionID,
		&c.UserID,
		&c.ParentID,
		&c.Text,
		&anchorStart,
		&anchorEnd,
		&anchorQuote,
		&c.IsResolved,
		&c.ResolvedBy,
		&c.ResolvedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if anchorStart != nil && anchorEnd != nil {
		c.Anchor = &models.CommentAnchor{StartOffset: *anchorStart, EndOffset: *anchorEnd}
		if anchorQuote != nil {
			c.Anchor.QuotedText = *anchorQuote
		}
	}
	return &c, nil
}

// CreateComment создает комментарий, при необходимости с родителем и привязкой к тексту.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, proposalId, sectionId, userId string, commentReq models.CommentRequest) (*models.Comment, error) {
	var anchorStart, anchorEnd *int
	var anchorQuote *string
	if commentReq.Anchor != nil {
		anchorStart = &commentReq.Anchor.StartOffset
		anchorEnd = &commentReq.Anchor.EndOffset
		anchorQuote = &commentReq.Anchor.QuotedText
	}

	insertQuery := `INSERT INTO section_comment (id, proposal_id, section_id, user_id, parent_id, text, anchor_start, anchor_end, anchor_quote, is_resolved, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)
	                RETURNING ` + commentColumns
	return scanComment(r.DB.QueryRow(
		ctx,
		insertQuery,
		uuid.New().String(),
		proposalId,
		sectionId,
		userId,
		commentReq.ParentID,
		commentReq.Text,
		anchorStart,
		anchorEnd,
		anchorQuote,
		time.Now().UTC()))
}

// GetCommentByID получает комментарий по ID.
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, commentId string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM section_comment WHERE id = $1`
	c, err := scanComment(r.DB.QueryRow(ctx, query, commentId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("comment not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ResolveComment помечает комментарий решенным.
func (r *PostgresCommentRepository) ResolveComment(ctx context.Context, commentId, resolvedBy string, resolvedAt time.Time) (*models.Comment, error) {
	updateQuery := `UPDATE section_comment SET is_resolved = true, resolved_by = $1, resolved_at = $2
	                WHERE id = $3 RETURNING ` + commentColumns
	c, err := scanComment(r.DB.QueryRow(ctx, updateQuery, resolvedBy, resolvedAt, commentId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment: %w", err)
	}
	return c, nil
}

// ListComments возвращает комментарии раздела от старых к новым.
// Если таблицы комментариев нет, путь деградирует до пустого списка.
func (r *PostgresCommentRepository) ListComments(ctx context.Context, proposalId, sectionId string) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM section_comment
	          WHERE proposal_id = $1 AND section_id = $2 ORDER BY created_at`
	rows, err := r.DB.Query(ctx, query, proposalId, sectionId)
	if isUndefinedTable(err) {
		return []models.Comment{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

// isUndefinedTable проверяет ошибку обращения к несуществующей таблице.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
