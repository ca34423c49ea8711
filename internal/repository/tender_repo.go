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
	"github.com/lib/pq"
)

// TenderRepository - интерфейс для работы с тендерами и их разделами.
type TenderRepository interface {
	CreateTender(ctx context.Context, tenderReq models.TenderRequest, user models.UserIdentity) (*models.Tender, error)
	GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error)
	GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error)
	PublishTender(ctx context.Context, tenderId string, publishedAt time.Time) (*models.Tender, error)
	CreateSection(ctx context.Context, tenderId string, sectionReq models.SectionRequest, orderIndex int) (*models.Section, error)
	UpdateSection(ctx context.Context, sectionId string, updateFields map[string]interface{}) (*models.Section, error)
	DeleteSection(ctx context.Context, sectionId string) error
	GetSections(ctx context.Context, tenderId string) ([]models.Section, error)
	GetSectionByID(ctx context.Context, sectionId string) (*models.Section, error)
	GetMaxOrderIndex(ctx context.Context, tenderId string) (int, error)
	OrderIndexTaken(ctx context.Context, tenderId string, orderIndex int) (bool, error)
}

// PostgresTenderRepository - реализация TenderRepository для базы данных.
type PostgresTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTenderRepository создает новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db *pgxpool.Pool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

const tenderColumns = `id, title, status, deadline, value, organization_id, created_by, created_at, published_at`

func scanTender(row pgx.Row) (*models.Tender, error) {
	var t models.Tender
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Status,
		&t.Deadline,
		&t.Value,
		&t.OrganizationID,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTender создает новый тендер в статусе DRAFT.
func (r *PostgresTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest, user models.UserIdentity) (*models.Tender, error) {
	newTender := models.Tender{
		ID:             uuid.New().String(),
		Title:          tenderReq.Title,
		Status:         models.DraftTender,
		Deadline:       tenderReq.Deadline,
		Value:          tenderReq.Value,
		OrganizationID: user.OrganizationID,
		CreatedBy:      user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	insertQuery := `INSERT INTO tender (id, title, status, deadline, value, organization_id, created_by, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newTender.ID,
		newTender.Title,
		newTender.Status,
		newTender.Deadline,
		newTender.Value,
		newTender.OrganizationID,
		newTender.CreatedBy,
		newTender.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tender: %w", err)
	}
	return &newTender, nil
}

// GetTenders возвращает список тендеров с фильтром по статусам.
func (r *PostgresTenderRepository) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *t)
	}
	return tenders, nil
}

// GetTenderByID получает тендер по ID.
func (r *PostgresTenderRepository) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender WHERE id = $1`
	t, err := scanTender(r.DB.QueryRow(ctx, query, tenderId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("tender not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PublishTender переводит тендер в PUBLISHED и фиксирует время публикации.
func (r *PostgresTenderRepository) PublishTender(ctx context.Context, tenderId string, publishedAt time.Time) (*models.Tender, error) {
	updateQuery := `UPDATE tender SET status = $1, published_at = $2 WHERE id = $3 RETURNING ` + tenderColumns
	return scanTender(r.DB.QueryRow(ctx, updateQuery, models.PublishedTender, publishedAt, tenderId))
}

// CreateSection создает новый раздел тендера.
func (r *PostgresTenderRepository) CreateSection(ctx context.Context, tenderId string, sectionReq models.SectionRequest, orderIndex int) (*models.Section, error) {
	newSection := models.Section{
		ID:          uuid.New().String(),
		TenderID:    tenderId,
		Title:       sectionReq.Title,
		Description: sectionReq.Description,
		OrderIndex:  orderIndex,
		IsMandatory: sectionReq.IsMandatory,
		CreatedAt:   time.Now().UTC(),
	}
	insertQuery := `INSERT INTO tender_section (id, tender_id, title, description, order_index, is_mandatory, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newSection.ID,
		newSection.TenderID,
		newSection.Title,
		newSection.Description,
		newSection.OrderIndex,
		newSection.IsMandatory,
		newSection.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert section: %w", err)
	}
	return &newSection, nil
}

// UpdateSection меняет поля раздела.
func (r *PostgresTenderRepository) UpdateSection(ctx context.Context, sectionId string, updateFields map[string]interface{}) (*models.Section, error) {
	updateQuery := `UPDATE tender_section SET `
	var updates []string
	var args []interface{}
	argIndex := 1

	if title, ok := updateFields["title"].(string); ok && title != "" {
		updates = append(updates, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, title)
		argIndex++
	}

	if description, ok := updateFields["description"].(string); ok {
		updates = append(updates, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, description)
		argIndex++
	}

	if orderIndex, ok := updateFields["orderIndex"].(int); ok {
		updates = append(updates, fmt.Sprintf("order_index = $%d", argIndex))
		args = append(args, orderIndex)
		argIndex++
	}

	if isMandatory, ok := updateFields["isMandatory"].(bool); ok {
		updates = append(updates, fmt.Sprintf("is_mandatory = $%d", argIndex))
		args = append(args, isMandatory)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewValidationError("no valid fields to update")
	}

	updateQuery += strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id, tender_id, title, description, order_index, is_mandatory, created_at", argIndex)
	args = append(args, sectionId)

	var updated models.Section
	err := r.DB.QueryRow(ctx, updateQuery, args...).Scan(
		&updated.ID,
		&updated.TenderID,
		&updated.Title,
		&updated.Description,
		&updated.OrderIndex,
		&updated.IsMandatory,
		&updated.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSection удаляет раздел тендера.
func (r *PostgresTenderRepository) DeleteSection(ctx context.Context, sectionId string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM tender_section WHERE id = $1`, sectionId)
	return err
}

// GetSections возвращает разделы тендера в порядке order_index.
func (r *PostgresTenderRepository) GetSections(ctx context.Context, tenderId string) ([]models.Section, error) {
	query := `SELECT id, tender_id, title, description, order_index, is_mandatory, created_at
	          FROM tender_section WHERE tender_id = $1 ORDER BY order_index`
	rows, err := r.DB.Query(ctx, query, tenderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.TenderID, &s.Title, &s.Description, &s.OrderIndex, &s.IsMandatory, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// GetSectionByID получает раздел по ID.
func (r *PostgresTenderRepository) GetSectionByID(ctx context.Context, sectionId string) (*models.Section, error) {
	query := `SELECT id, tender_id, title, description, order_index, is_mandatory, created_at
	          FROM tender_section WHERE id = $1`
	var s models.Section
	err := r.DB.QueryRow(ctx, query, sectionId).Scan(
		&s.ID,
		&s.TenderID,
		&s.Title,
		&s.Description,
		&s.OrderIndex,
		&s.IsMandatory,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("section not found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetMaxOrderIndex возвращает максимальный order_index среди разделов тендера.
func (r *PostgresTenderRepository) GetMaxOrderIndex(ctx context.Context, tenderId string) (int, error) {
	var maxIndex int
	query := `SELECT COALESCE(MAX(order_index), -1) FROM tender_section WHERE tender_id = $1`
	err := r.DB.QueryRow(ctx, query, tenderId).Scan(&maxIndex)
	return maxIndex, err
}

// OrderIndexTaken проверяет, занят ли order_index внутри тендера.
func (r *PostgresTenderRepository) OrderIndexTaken(ctx context.Context, tenderId string, orderIndex int) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM tender_section WHERE tender_id = $1 AND order_index = $2)`
	err := r.DB.QueryRow(ctx, query, tenderId, orderIndex).Scan(&taken)
	return taken, err
}
