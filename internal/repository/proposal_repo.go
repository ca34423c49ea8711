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

// ProposalRepository - интерфейс для работы с предложениями и их версиями.
type ProposalRepository interface {
	CreateProposal(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Proposal, error)
	GetProposalByID(ctx context.Context, proposalId string) (*models.Proposal, error)
	ActiveProposalExists(ctx context.Context, tenderId, organizationId string) (bool, error)
	UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus, now time.Time) (*models.Proposal, error)
	CreateNewVersion(ctx context.Context, current *models.Proposal, now time.Time) (*models.Proposal, error)
	GetVersionHistory(ctx context.Context, tenderId, organizationId string) ([]models.ProposalVersion, error)
	GetVersionSnapshot(ctx context.Context, tenderId, organizationId string, version int) (*models.ProposalSnapshot, error)
	GetSectionResponses(ctx context.Context, proposalId string) ([]models.SectionResponse, error)
	GetSectionResponse(ctx context.Context, proposalId, sectionId string) (*models.SectionResponse, error)
	UpsertSectionResponse(ctx context.Context, proposalId, sectionId, content, editorId string) (*models.SectionResponse, error)
	GetIncompleteMandatorySections(ctx context.Context, proposalId string) ([]string, error)
}

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
type PostgresProposalRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProposalRepository создает новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db}
}

const proposalColumns = `id, tender_id, organization_id, status, version, is_archived, created_by, created_at, finalized_at, published_at, submitted_at`

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var p models.Proposal
	err := row.Scan(
		&p.ID,
		&p.TenderID,
		&p.OrganizationID,
		&p.Status,
		&p.Version,
		&p.IsArchived,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.FinalizedAt,
		&p.PublishedAt,
		&p.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProposal создает первую версию предложения организации по тендеру.
func (r *PostgresProposalRepository) CreateProposal(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Proposal, error) {
	newProposal := models.Proposal{
		ID:             uuid.New().String(),
		TenderID:       tenderId,
		OrganizationID: user.OrganizationID,
		Status:         models.DraftProposal,
		Version:        1,
		CreatedBy:      user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	insertQuery := `INSERT INTO proposal (id, tender_id, organization_id, status, version, is_archived, created_by, created_at)
	                VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newProposal.ID,
		newProposal.TenderID,
		newProposal.OrganizationID,
		newProposal.Status,
		newProposal.Version,
		newProposal.CreatedBy,
		newProposal.CreatedAt)
	if isUniqueViolation(err) {
		return nil, models.NewValidationError("active proposal for this tender already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert proposal: %w", err)
	}
	return &newProposal, nil
}

// GetProposalByID получает предложение по ID.
func (r *PostgresProposalRepository) GetProposalByID(ctx context.Context, proposalId string) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal WHERE id = $1`
	p, err := scanProposal(r.DB.QueryRow(ctx, query, proposalId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("proposal not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ActiveProposalExists проверяет, есть ли у организации активная (неархивная) версия по тендеру.
func (r *PostgresProposalRepository) ActiveProposalExists(ctx context.Context, tenderId, organizationId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM proposal WHERE tender_id = $1 AND organization_id = $2 AND is_archived = false)`
	err := r.DB.QueryRow(ctx, query, tenderId, organizationId).Scan(&exists)
	return exists, err
}

// UpdateProposalStatus меняет статус предложения и проставляет связанную отметку времени.
// Возврат в DRAFT сбрасывает finalized_at.
func (r *PostgresProposalRepository) UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus, now time.Time) (*models.Proposal, error) {
	var updateQuery string
	args := []interface{}{status, proposalId}

	switch status {
	case models.FinalProposal:
		updateQuery = `UPDATE proposal SET status = $1, finalized_at = $3 WHERE id = $2 RETURNING ` + proposalColumns
		args = append(args, now)
	case models.PublishedProposal:
		updateQuery = `UPDATE proposal SET status = $1, published_at = $3 WHERE id = $2 RETURNING ` + proposalColumns
		args = append(args, now)
	case models.SubmittedProposal:
		updateQuery = `UPDATE proposal SET status = $1, submitted_at = $3 WHERE id = $2 RETURNING ` + proposalColumns
		args = append(args, now)
	case models.DraftProposal:
		updateQuery = `UPDATE proposal SET status = $1, finalized_at = NULL WHERE id = $2 RETURNING ` + proposalColumns
	default:
		updateQuery = `UPDATE proposal SET status = $1 WHERE id = $2 RETURNING ` + proposalColumns
	}

	return scanProposal(r.DB.QueryRow(ctx, updateQuery, args...))
}

// CreateNewVersion архивирует текущую версию и создает следующую в одной транзакции.
// Уникальный индекс (tender_id, organization_id, version) не дает двум вызовам
// одновременно создать одну и ту же версию N+1.
func (r *PostgresProposalRepository) CreateNewVersion(ctx context.Context, current *models.Proposal, now time.Time) (*models.Proposal, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `UPDATE proposal SET is_archived = true WHERE id = $1`, current.ID)
	if err != nil {
		return nil, err
	}

	newProposal := models.Proposal{
		ID:             uuid.New().String(),
		TenderID:       current.TenderID,
		OrganizationID: current.OrganizationID,
		Status:         models.DraftProposal,
		Version:        current.Version + 1,
		CreatedBy:      current.CreatedBy,
		CreatedAt:      now,
	}
	insertQuery := `INSERT INTO proposal (id, tender_id, organization_id, status, version, is_archived, created_by, created_at)
	                VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
	_, err = tx.Exec(
		ctx,
		insertQuery,
		newProposal.ID,
		newProposal.TenderID,
		newProposal.OrganizationID,
		newProposal.Status,
		newProposal.Version,
		newProposal.CreatedBy,
		newProposal.CreatedAt)
	if isUniqueViolation(err) {
		return nil, models.NewValidationError("next proposal version already exists")
	}
	if err != nil {
		return nil, err
	}

	copyQuery := `INSERT INTO section_response (id, proposal_id, section_id, content, last_edited_by, updated_at)
	              SELECT gen_random_uuid(), $1, section_id, content, last_edited_by, $2
	              FROM section_response WHERE proposal_id = $3`
	_, err = tx.Exec(ctx, copyQuery, newProposal.ID, now, current.ID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &newProposal, nil
}

// GetVersionHistory возвращает версии предложения организации по тендеру от новых к старым.
func (r *PostgresProposalRepository) GetVersionHistory(ctx context.Context, tenderId, organizationId string) ([]models.ProposalVersion, error) {
	query := `SELECT id, version, status, is_archived, created_at, published_at
	          FROM proposal WHERE tender_id = $1 AND organization_id = $2 ORDER BY version DESC`
	rows, err := r.DB.Query(ctx, query, tenderId, organizationId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []models.ProposalVersion
	for rows.Next() {
		var v models.ProposalVersion
		if err := rows.Scan(&v.ProposalID, &v.Version, &v.Status, &v.IsArchived, &v.CreatedAt, &v.PublishedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// GetVersionSnapshot возвращает полный срез одной версии предложения.
func (r *PostgresProposalRepository) GetVersionSnapshot(ctx context.Context, tenderId, organizationId string, version int) (*models.ProposalSnapshot, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal
	          WHERE tender_id = $1 AND organization_id = $2 AND version = $3`
	p, err := scanProposal(r.DB.QueryRow(ctx, query, tenderId, organizationId, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("proposal version not found")
	}
	if err != nil {
		return nil, err
	}

	responses, err := r.GetSectionResponses(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.ProposalSnapshot{Proposal: *p, Responses: responses}, nil
}

// GetSectionResponses возвращает ответы предложения в порядке разделов тендера.
func (r *PostgresProposalRepository) GetSectionResponses(ctx context.Context, proposalId string) ([]models.SectionResponse, error) {
	query := `SELECT sr.id, sr.proposal_id, sr.section_id, sr.content, sr.last_edited_by, sr.updated_at
	          FROM section_response sr
	          JOIN tender_section s ON sr.section_id = s.id
	          WHERE sr.proposal_id = $1
	          ORDER BY s.order_index`
	rows, err := r.DB.Query(ctx, query, proposalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []models.SectionResponse
	for rows.Next() {
		var sr models.SectionResponse
		if err := rows.Scan(&sr.ID, &sr.ProposalID, &sr.SectionID, &sr.Content, &sr.LastEditedBy, &sr.UpdatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, sr)
	}
	return responses, nil
}

// GetSectionResponse возвращает ответ на один раздел, nil если ответа еще нет.
func (r *PostgresProposalRepository) GetSectionResponse(ctx context.Context, proposalId, sectionId string) (*models.SectionResponse, error) {
	query := `SELECT id, proposal_id, section_id, content, last_edited_by, updated_at
	          FROM section_response WHERE proposal_id = $1 AND section_id = $2`
	var sr models.SectionResponse
	err := r.DB.QueryRow(ctx, query, proposalId, sectionId).Scan(&sr.ID, &sr.ProposalID, &sr.SectionID, &sr.Content, &sr.LastEditedBy, &sr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// UpsertSectionResponse вставляет или обновляет ответ по ключу (proposal_id, section_id).
func (r *PostgresProposalRepository) UpsertSectionResponse(ctx context.Context, proposalId, sectionId, content, editorId string) (*models.SectionResponse, error) {
	upsertQuery := `INSERT INTO section_response (id, proposal_id, section_id, content, last_edited_by, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6)
	                ON CONFLICT (proposal_id, section_id)
	                DO UPDATE SET content = EXCLUDED.content, last_edited_by = EXCLUDED.last_edited_by, updated_at = EXCLUDED.updated_at
	                RETURNING id, proposal_id, section_id, content, last_edited_by, updated_at`
	var sr models.SectionResponse
	err := r.DB.QueryRow(
		ctx,
		upsertQuery,
		uuid.New().String(),
		proposalId,
		sectionId,
		content,
		editorId,
		time.Now().UTC()).Scan(&sr.ID, &sr.ProposalID, &sr.SectionID, &sr.Content, &sr.LastEditedBy, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// GetIncompleteMandatorySections возвращает обязательные разделы тендера без непустого ответа.
func (r *PostgresProposalRepository) GetIncompleteMandatorySections(ctx context.Context, proposalId string) ([]string, error) {
	query := `SELECT s.id
	          FROM tender_section s
	          JOIN proposal p ON s.tender_id = p.tender_id
	          WHERE p.id = $1 AND s.is_mandatory = true
	          AND NOT EXISTS (
	              SELECT 1 FROM section_response sr
	              WHERE sr.proposal_id = p.id AND sr.section_id = s.id AND length(trim(sr.content)) > 0
	          )
	          ORDER BY s.order_index`
	rows, err := r.DB.Query(ctx, query, proposalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sectionIds []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sectionIds = append(sectionIds, id)
	}
	return sectionIds, nil
}

// isUniqueViolation проверяет нарушение уникального ограничения Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
