package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/agneltms/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollaboratorRepository - интерфейс для работы с назначениями доступа.
type CollaboratorRepository interface {
	UpsertCollaborator(ctx context.Context, proposalId, sectionId, userId string, permission models.Permission, assignedBy string) (*models.Collaborator, error)
	RemoveCollaborator(ctx context.Context, proposalId, sectionId, userId string) error
	GetPermission(ctx context.Context, userId, proposalId, sectionId string) (models.Permission, error)
	GetUploadedTenderPermission(ctx context.Context, userId, uploadedTenderId, sectionKey string) (models.Permission, error)
	ListUserAssignments(ctx context.Context, userId string) ([]models.Assignment, error)
}

// PostgresCollaboratorRepository - реализация CollaboratorRepository для базы данных.
type PostgresCollaboratorRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCollaboratorRepository создает новый экземпляр PostgresCollaboratorRepository.
func NewPostgresCollaboratorRepository(db *pgxpool.Pool) *PostgresCollaboratorRepository {
	return &PostgresCollaboratorRepository{DB: db}
}

// UpsertCollaborator назначает или обновляет доступ пользователя к разделу предложения.
func (r *PostgresCollaboratorRepository) UpsertCollaborator(ctx context.Context, proposalId, sectionId, userId string, permission models.Permission, assignedBy string) (*models.Collaborator, error) {
	upsertQuery := `INSERT INTO proposal_collaborator (id, proposal_id, section_id, user_id, permission, assigned_by, assigned_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7)
	                ON CONFLICT (proposal_id, section_id, user_id)
	                DO UPDATE SET permission = EXCLUDED.permission, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at
	                RETURNING id, proposal_id, section_id, user_id, permission, assigned_by, assigned_at`
	var c models.Collaborator
	err := r.DB.QueryRow(
		ctx,
		upsertQuery,
		uuid.New().String(),
		proposalId,
		sectionId,
		userId,
		permission,
		assignedBy,
		time.Now().UTC()).Scan(&c.ID, &c.ProposalID, &c.SectionID, &c.UserID, &c.Permission, &c.AssignedBy, &c.AssignedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert collaborator: %w", err)
	}
	return &c, nil
}

// RemoveCollaborator снимает назначение доступа.
func (r *PostgresCollaboratorRepository) RemoveCollaborator(ctx context.Context, proposalId, sectionId, userId string) error {
	_, err := r.DB.Exec(
		ctx,
		`DELETE FROM proposal_collaborator WHERE proposal_id = $1 AND section_id = $2 AND user_id = $3`,
		proposalId, sectionId, userId)
	return err
}

// GetPermission возвращает уровень доступа пользователя к разделу предложения.
// Отсутствие записи означает NONE, роль учетной записи здесь не участвует.
func (r *PostgresCollaboratorRepository) GetPermission(ctx context.Context, userId, proposalId, sectionId string) (models.Permission, error) {
	var permission models.Permission
	query := `SELECT permission FROM proposal_collaborator WHERE user_id = $1 AND proposal_id = $2 AND section_id = $3`
	err := r.DB.QueryRow(ctx, query, userId, proposalId, sectionId).Scan(&permission)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NoPermission, nil
	}
	if err != nil {
		return models.NoPermission, err
	}
	return permission, nil
}

// GetUploadedTenderPermission возвращает уровень доступа к разделу загруженного тендера.
func (r *PostgresCollaboratorRepository) GetUploadedTenderPermission(ctx context.Context, userId, uploadedTenderId, sectionKey string) (models.Permission, error) {
	var permission models.Permission
	query := `SELECT permission FROM uploaded_tender_collaborator WHERE user_id = $1 AND uploaded_tender_id = $2 AND section_key = $3`
	err := r.DB.QueryRow(ctx, query, userId, uploadedTenderId, sectionKey).Scan(&permission)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NoPermission, nil
	}
	if err != nil {
		return models.NoPermission, err
	}
	return permission, nil
}

// ListUserAssignments объединяет назначения из обеих таблиц, от новых к старым.
func (r *PostgresCollaboratorRepository) ListUserAssignments(ctx context.Context, userId string) ([]models.Assignment, error) {
	var assignments []models.Assignment

	proposalQuery := `SELECT id, proposal_id, section_id, permission, assigned_by, assigned_at
	                  FROM proposal_collaborator WHERE user_id = $1`
	rows, err := r.DB.Query(ctx, proposalQuery, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a := models.Assignment{Source: models.ProposalAssignment}
		if err := rows.Scan(&a.ID, &a.TargetID, &a.SectionRef, &a.Permission, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	rows.Close()

	uploadedQuery := `SELECT id, uploaded_tender_id, section_key, permission, assigned_by, assigned_at
	                  FROM uploaded_tender_collaborator WHERE user_id = $1`
	uploadedRows, err := r.DB.Query(ctx, uploadedQuery, userId)
	if err != nil {
		return nil, err
	}
	defer uploadedRows.Close()

	for uploadedRows.Next() {
		a := models.Assignment{Source: models.UploadedTenderAssignment}
		if err := uploadedRows.Scan(&a.ID, &a.TargetID, &a.SectionRef, &a.Permission, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].AssignedAt.After(assignments[j].AssignedAt)
	})
	return assignments, nil
}
