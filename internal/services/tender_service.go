package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/repository"
	"github.com/agneltms/procurement-service/internal/utils"
)

type TenderService struct {
	Repo repository.TenderRepository
}

// NewTenderService создает новый экземпляр TenderService.
func NewTenderService(repo repository.TenderRepository) *TenderService {
	return &TenderService{Repo: repo}
}

// CreateTender создает новый тендер в статусе DRAFT.
func (s *TenderService) CreateTender(ctx context.Context, tenderReq models.TenderRequest, user models.UserIdentity) (*models.Tender, error) {
	if tenderReq.Title == "" {
		return nil, models.NewValidationError("missing required field: title")
	}
	if tenderReq.Deadline.IsZero() {
		return nil, models.NewValidationError("missing required field: deadline")
	}
	if tenderReq.Value < 0 {
		return nil, models.NewValidationError("tender value must be non-negative")
	}
	return s.Repo.CreateTender(ctx, tenderReq, user)
}

// FetchTenders получает список тендеров с фильтром по статусам.
func (s *TenderService) FetchTenders(ctx context.Context, limitStr, offsetStr string, statuses []string) ([]models.Tender, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	for _, status := range statuses {
		if !models.ValidTenderStatus(models.TenderStatus(status)) {
			return nil, models.NewValidationError(fmt.Sprintf("unsupported tender status: %s", status))
		}
	}
	return s.Repo.GetTenders(ctx, limit, offset, statuses)
}

// GetTenderByID получает тендер по ID.
func (s *TenderService) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	return s.Repo.GetTenderByID(ctx, tenderId)
}

// ownedDraftTender загружает тендер и проверяет владение и статус DRAFT.
// Опубликованный тендер неизменяем, разделы трогать нельзя.
func (s *TenderService) ownedDraftTender(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Tender, error) {
	tender, err := s.Repo.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	if tender.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("tender belongs to another organization")
	}
	if tender.Status != models.DraftTender {
		return nil, models.NewValidationError("published tenders are immutable")
	}
	return tender, nil
}

// AddSection добавляет раздел в тендер. Без явного order_index раздел
// ставится в конец, занятый индекс отклоняется.
func (s *TenderService) AddSection(ctx context.Context, tenderId string, sectionReq models.SectionRequest, user models.UserIdentity) (*models.Section, error) {
	if sectionReq.Title == "" {
		return nil, models.NewValidationError("missing required field: title")
	}
	if _, err := s.ownedDraftTender(ctx, tenderId, user); err != nil {
		return nil, err
	}

	var orderIndex int
	if sectionReq.OrderIndex != nil {
		taken, err := s.Repo.OrderIndexTaken(ctx, tenderId, *sectionReq.OrderIndex)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError(fmt.Sprintf("order index %d is already taken", *sectionReq.OrderIndex))
		}
		orderIndex = *sectionReq.OrderIndex
	} else {
		maxIndex, err := s.Repo.GetMaxOrderIndex(ctx, tenderId)
		if err != nil {
			return nil, err
		}
		orderIndex = maxIndex + 1
	}
	return s.Repo.CreateSection(ctx, tenderId, sectionReq, orderIndex)
}

// EditSection меняет поля раздела тендера в статусе DRAFT.
func (s *TenderService) EditSection(ctx context.Context, sectionId string, updateFields map[string]interface{}, user models.UserIdentity) (*models.Section, error) {
	section, err := s.Repo.GetSectionByID(ctx, sectionId)
	if err != nil {
		return nil, err
	}
	if _, err = s.ownedDraftTender(ctx, section.TenderID, user); err != nil {
		return nil, err
	}
	if orderIndex, ok := updateFields["orderIndex"].(int); ok && orderIndex != section.OrderIndex {
		taken, err := s.Repo.OrderIndexTaken(ctx, section.TenderID, orderIndex)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError(fmt.Sprintf("order index %d is already taken", orderIndex))
		}
	}
	return s.Repo.UpdateSection(ctx, sectionId, updateFields)
}

// DeleteSection удаляет раздел тендера в статусе DRAFT.
func (s *TenderService) DeleteSection(ctx context.Context, sectionId string, user models.UserIdentity) error {
	section, err := s.Repo.GetSectionByID(ctx, sectionId)
	if err != nil {
		return err
	}
	if _, err = s.ownedDraftTender(ctx, section.TenderID, user); err != nil {
		return err
	}
	return s.Repo.DeleteSection(ctx, sectionId)
}

// GetSections возвращает разделы тендера по порядку.
func (s *TenderService) GetSections(ctx context.Context, tenderId string) ([]models.Section, error) {
	if _, err := s.Repo.GetTenderByID(ctx, tenderId); err != nil {
		return nil, err
	}
	return s.Repo.GetSections(ctx, tenderId)
}

// PublishTender публикует тендер. После публикации разделы заморожены,
// повторная публикация отклоняется.
func (s *TenderService) PublishTender(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Tender, error) {
	tender, err := s.Repo.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	if tender.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("tender belongs to another organization")
	}
	if tender.Status != models.DraftTender {
		return nil, models.NewInvalidTransitionError(string(tender.Status), string(models.PublishedTender))
	}

	sections, err := s.Repo.GetSections(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, models.NewValidationError("tender must have at least one section before publishing")
	}
	return s.Repo.PublishTender(ctx, tenderId, time.Now().UTC())
}
