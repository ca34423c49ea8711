package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agneltms/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvaluationRepository - интерфейс для работы с оценкой заявок.
type EvaluationRepository interface {
	GetTenderEvaluationStatus(ctx context.Context, tenderId string) (*models.TenderEvaluationStatus, error)
	InitializeTenderEvaluation(ctx context.Context, tenderId string) (*models.TenderEvaluationStatus, error)
	GetBidEvaluationByProposal(ctx context.Context, proposalId string) (*models.BidEvaluation, error)
	UpdateBidEvaluation(ctx context.Context, proposalId string, update models.BidEvaluationUpdate, evaluatedBy string, evaluatedAt time.Time) (*models.BidEvaluation, error)
	CompleteEvaluation(ctx context.Context, tenderId string, completedAt time.Time) (*models.TenderEvaluationStatus, error)
	GetBidsForTender(ctx context.Context, tenderId string) ([]models.BidEvaluation, error)
}

// PostgresEvaluationRepository - реализация EvaluationRepository для базы данных.
type PostgresEvaluationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresEvaluationRepository создает новый экземпляр PostgresEvaluationRepository.
func NewPostgresEvaluationRepository(db *pgxpool.Pool) *PostgresEvaluationRepository {
	return &PostgresEvaluationRepository{DB: db}
}

const evaluationStatusColumns = `id, tender_id, evaluation_status, total_bids_received, qualified_bids, disqualified_bids, l1_proposal_id, l1_amount, created_at, completed_at`

func scanEvaluationStatus(row pgx.Row) (*models.TenderEvaluationStatus, error) {
	var s models.TenderEvaluationStatus
	err := row.Scan(
		&s.ID,
		&s.TenderID,
		&s.EvaluationStatus,
		&s.TotalBidsReceived,
		&s.QualifiedBids,
		&s.DisqualifiedBids,
		&s.L1ProposalID,
		&s.L1Amount,
		&s.CreatedAt,
		&s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const bidEvaluationColumns = `id, tender_id, proposal_id, bid_amount, technical_status, technical_score, remarks, evaluated_by, evaluated_at, status, created_at`

func scanBidEvaluation(row pgx.Row) (*models.BidEvaluation, error) {
	var b models.BidEvaluation
	err := row.Scan(
		&b.ID,
		&b.TenderID,
		&b.ProposalID,
		&b.BidAmount,
		&b.TechnicalStatus,
		&b.TechnicalScore,
		&b.Remarks,
		&b.EvaluatedBy,
		&b.EvaluatedAt,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetTenderEvaluationStatus получает агрегат оценки по тендеру.
func (r *PostgresEvaluationRepository) GetTenderEvaluationStatus(ctx context.Context, tenderId string) (*models.TenderEvaluationStatus, error) {
	query := `SELECT ` + evaluationStatusColumns + ` FROM tender_evaluation_status WHERE tender_id = $1`
	s, err := scanEvaluationStatus(r.DB.QueryRow(ctx, query, tenderId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("tender evaluation not found")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// InitializeTenderEvaluation создает агрегат и по одной оценке на каждое предложение
// в одной транзакции. Повторный вызов возвращает существующий агрегат без изменений,
// уже созданные оценки пропускаются через ON CONFLICT DO NOTHING.
func (r *PostgresEvaluationRepository) InitializeTenderEvaluation(ctx context.Context, tenderId string) (*models.TenderEvaluationStatus, error) {
	existing, err := r.GetTenderEvaluationStatus(ctx, tenderId)
	if err == nil {
		return existing, nil
	}
	var svcErr *models.ServiceError
	if !errors.As(err, &svcErr) || svcErr.Kind != models.NotFoundErrorKind {
		return nil, err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalBids int
	countQuery := `SELECT COUNT(*) FROM proposal WHERE tender_id = $1 AND is_archived = false`
	if err = tx.QueryRow(ctx, countQuery, tenderId).Scan(&totalBids); err != nil {
		return nil, err
	}

	insertStatusQuery := `INSERT INTO tender_evaluation_status (id, tender_id, evaluation_status, total_bids_received, qualified_bids, disqualified_bids, created_at)
	                      VALUES ($1, $2, $3, $4, 0, 0, $5)
	                      RETURNING ` + evaluationStatusColumns
	status, err := scanEvaluationStatus(tx.QueryRow(
		ctx,
		insertStatusQuery,
		uuid.New().String(),
		tenderId,
		models.InProgressEvaluation,
		totalBids,
		time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	insertBidsQuery := `INSERT INTO bid_evaluation (id, tender_id, proposal_id, technical_status, remarks, status, created_at)
	                    SELECT gen_random_uuid(), $1, id, $2, '', $3, $4
	                    FROM proposal WHERE tender_id = $1 AND is_archived = false
	                    ON CONFLICT (proposal_id) DO NOTHING`
	_, err = tx.Exec(ctx, insertBidsQuery, tenderId, models.PendingTechnical, models.PendingEvaluation, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return status, nil
}

// GetBidEvaluationByProposal получает оценку заявки по предложению.
func (r *PostgresEvaluationRepository) GetBidEvaluationByProposal(ctx context.Context, proposalId string) (*models.BidEvaluation, error) {
	query := `SELECT ` + bidEvaluationColumns + ` FROM bid_evaluation WHERE proposal_id = $1`
	b, err := scanBidEvaluation(r.DB.QueryRow(ctx, query, proposalId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("bid evaluation not found")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBidEvaluation частично обновляет оценку заявки. Незаданные поля
// сохраняют прежние значения, прогресс переходит в IN_PROGRESS.
func (r *PostgresEvaluationRepository) UpdateBidEvaluation(ctx context.Context, proposalId string, update models.BidEvaluationUpdate, evaluatedBy string, evaluatedAt time.Time) (*models.BidEvaluation, error) {
	updateQuery := `UPDATE bid_evaluation SET `
	var updates []string
	var args []interface{}
	argIndex := 1

	if update.BidAmount != nil {
		updates = append(updates, fmt.Sprintf("bid_amount = $%d", argIndex))
		args = append(args, *update.BidAmount)
		argIndex++
	}

	if update.TechnicalStatus != nil {
		updates = append(updates, fmt.Sprintf("technical_status = $%d", argIndex))
		args = append(args, *update.TechnicalStatus)
		argIndex++
	}

	if update.TechnicalScore != nil {
		updates = append(updates, fmt.Sprintf("technical_score = $%d", argIndex))
		args = append(args, *update.TechnicalScore)
		argIndex++
	}

	if update.Remarks != nil {
		updates = append(updates, fmt.Sprintf("remarks = $%d", argIndex))
		args = append(args, *update.Remarks)
		argIndex++
	}

	updates = append(updates, fmt.Sprintf("evaluated_by = $%d", argIndex))
	args = append(args, evaluatedBy)
	argIndex++

	updates = append(updates, fmt.Sprintf("evaluated_at = $%d", argIndex))
	args = append(args, evaluatedAt)
	argIndex++

	updates = append(updates, fmt.Sprintf("status = $%d", argIndex))
	args = append(args, models.InProgressEvaluation)
	argIndex++

	updateQuery += strings.Join(updates, ", ") + fmt.Sprintf(" WHERE proposal_id = $%d RETURNING ", argIndex) + bidEvaluationColumns
	args = append(args, proposalId)

	b, err := scanBidEvaluation(r.DB.QueryRow(ctx, updateQuery, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("bid evaluation not found")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CompleteEvaluation вычисляет L1 и закрывает оценку тендера в одной транзакции.
// Повторное завершение отклоняется по прочитанному под блокировкой статусу.
func (r *PostgresEvaluationRepository) CompleteEvaluation(ctx context.Context, tenderId string, completedAt time.Time) (*models.TenderEvaluationStatus, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var currentStatus models.EvaluationStatus
	statusQuery := `SELECT evaluation_status FROM tender_evaluation_status WHERE tender_id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, statusQuery, tenderId).Scan(&currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("tender evaluation not found")
	}
	if err != nil {
		return nil, err
	}
	if currentStatus == models.CompletedEvaluation {
		return nil, models.NewInvalidTransitionError(string(currentStatus), string(models.CompletedEvaluation))
	}

	var qualified, disqualified int
	countQuery := `SELECT
	                   COUNT(*) FILTER (WHERE technical_status = $2),
	                   COUNT(*) FILTER (WHERE technical_status = $3)
	               FROM bid_evaluation WHERE tender_id = $1`
	err = tx.QueryRow(ctx, countQuery, tenderId, models.QualifiedTechnical, models.DisqualifiedTechnical).Scan(&qualified, &disqualified)
	if err != nil {
		return nil, err
	}

	// L1 - минимальная сумма среди квалифицированных заявок,
	// при равенстве побеждает созданная раньше.
	var l1ProposalId *string
	var l1Amount *float64
	l1Query := `SELECT proposal_id, bid_amount FROM bid_evaluation
	            WHERE tender_id = $1 AND technical_status = $2 AND bid_amount IS NOT NULL
	            ORDER BY bid_amount ASC, created_at ASC LIMIT 1`
	err = tx.QueryRow(ctx, l1Query, tenderId, models.QualifiedTechnical).Scan(&l1ProposalId, &l1Amount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	updateQuery := `UPDATE tender_evaluation_status
	                SET evaluation_status = $1, qualified_bids = $2, disqualified_bids = $3, l1_proposal_id = $4, l1_amount = $5, completed_at = $6
	                WHERE tender_id = $7 RETURNING ` + evaluationStatusColumns
	status, err := scanEvaluationStatus(tx.QueryRow(
		ctx,
		updateQuery,
		models.CompletedEvaluation,
		qualified,
		disqualified,
		l1ProposalId,
		l1Amount,
		completedAt,
		tenderId))
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return status, nil
}

// GetBidsForTender возвращает заявки тендера по возрастанию суммы,
// неквалифицированные и пустые заявки в конце списка.
func (r *PostgresEvaluationRepository) GetBidsForTender(ctx context.Context, tenderId string) ([]models.BidEvaluation, error) {
	query := `SELECT ` + bidEvaluationColumns + ` FROM bid_evaluation
	          WHERE tender_id = $1
	          ORDER BY CASE WHEN technical_status = $2 AND bid_amount IS NOT NULL THEN 0 ELSE 1 END,
	                   bid_amount ASC NULLS LAST, created_at ASC`
	rows, err := r.DB.Query(ctx, query, tenderId, models.QualifiedTechnical)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.BidEvaluation
	for rows.Next() {
		b, err := scanBidEvaluation(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *b)
	}
	return bids, nil
}
