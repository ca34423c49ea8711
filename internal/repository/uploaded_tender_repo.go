package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agneltms/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UploadedTenderRepository - интерфейс для работы с загруженными тендерами.
type UploadedTenderRepository interface {
	CreateUploadedTender(ctx context.Context, title string, user models.UserIdentity) (*models.UploadedTender, error)
	GetUploadedTenderByID(ctx context.Context, uploadedTenderId string) (*models.UploadedTender, error)
	UpsertCollaborator(ctx context.Context, uploadedTenderId, sectionKey, userId string, permission models.Permission, assignedBy string) (*models.UploadedTenderCollaborator, error)
}

// PostgresUploadedTenderRepository - реализация UploadedTenderRepository для базы данных.
type PostgresUploadedTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUploadedTenderRepository создает новый экземпляр PostgresUploadedTenderRepository.
func NewPostgresUploadedTenderRepository(db *pgxpool.Pool) *PostgresUploadedTenderRepository {
	return &PostgresUploadedTenderRepository{DB: db}
}

// CreateUploadedTender регистрирует загруженный тендерный документ.
func (r *PostgresUploadedTenderRepository) CreateUploadedTender(ctx context.Context, title string, user models.UserIdentity) (*models.UploadedTender, error) {
	newUploaded := models.UploadedTender{
		ID:             uuid.New().String(),
		Title:          title,
		OrganizationID: user.OrganizationID,
		UploadedBy:     user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	insertQuery := `INSERT INTO uploaded_tender (id, title, organization_id, uploaded_by, created_at)
	                VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newUploaded.ID,
		newUploaded.Title,
		newUploaded.OrganizationID,
		newUploaded.UploadedBy,
		newUploaded.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert uploaded tender: %w", err)
	}
	return &newUploaded, nil
}

// GetUploadedTenderByID получает загруженный тендер по ID.
func (r *PostgresUploadedTenderRepository) GetUploadedTenderByID(ctx context.Context, uploadedTenderId string) (*models.UploadedTender, error) {
	query := `SELECT id, title, organization_id, uploaded_by, created_at FROM uploaded_tender WHERE id = $1`
	var u models.UploadedTender
	err := r.DB.QueryRow(ctx, query, uploadedTenderId).Scan(&u.ID, &u.Title, &u.OrganizationID, &u.UploadedBy, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("uploaded tender not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertCollaborator назначает или обновляет доступ к разделу загруженного тендера.
func (r *PostgresUploadedTenderRepository) UpsertCollaborator(ctx context.Context, uploadedTenderId, sectionKey, userId string, permission models.Permission, assignedBy string) (*models.UploadedTenderCollaborator, error) {
	upsertQuery := `INSERT INTO uploaded_tender_collaborator (id, uploaded_tender_id, section_key, user_id, permission, assigned_by, assigned_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7)
	                ON CONFLICT (uploaded_tender_id, section_key, user_id)
	                DO UPDATE SET permission = EXCLUDED.permission, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at
	                RETURNING id, uploaded_tender_id, section_key, user_id, permission, assigned_by, assigned_at`
	var c models.UploadedTenderCollaborator
	err := r.DB.QueryRow(
		ctx,
		upsertQuery,
		uuid.New().String(),
		uploadedTenderId,
		sectionKey,
		userId,
		permission,
		assignedBy,
		time.Now().UTC()).Scan(&c.ID, &c.UploadedTenderID, &c.SectionKey, &c.UserID, &c.Permission, &c.AssignedBy, &c.AssignedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert uploaded tender collaborator: %w", err)
	}
	return &c, nil
}
