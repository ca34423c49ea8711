package services

import (
	"context"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/repository"
	"github.com/agneltms/procurement-service/internal/utils"
)

type ProposalService struct {
	Repo    repository.ProposalRepository
	Tenders repository.TenderRepository
}

// NewProposalService создает новый экземпляр ProposalService.
func NewProposalService(repo repository.ProposalRepository, tenders repository.TenderRepository) *ProposalService {
	return &ProposalService{Repo: repo, Tenders: tenders}
}

// CreateProposal создает черновик предложения по опубликованному тендеру.
// У организации может быть только одна активная версия по тендеру.
func (s *ProposalService) CreateProposal(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Proposal, error) {
	tender, err := s.Tenders.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	if tender.Status != models.PublishedTender {
		return nil, models.NewValidationError("tender is not accepting proposals")
	}

	exists, err := s.Repo.ActiveProposalExists(ctx, tenderId, user.OrganizationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("active proposal for this tender already exists")
	}
	return s.Repo.CreateProposal(ctx, tenderId, user)
}

// GetProposalByID получает предложение по ID с проверкой доступа:
// свое предложение видит участник, чужое - владелец тендера.
func (s *ProposalService) GetProposalByID(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.Repo.GetProposalByID(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if proposal.OrganizationID == user.OrganizationID {
		return proposal, nil
	}
	tender, err := s.Tenders.GetTenderByID(ctx, proposal.TenderID)
	if err != nil {
		return nil, err
	}
	if tender.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("proposal belongs to another organization")
	}
	return proposal, nil
}

// ownedProposal загружает предложение и проверяет владение организацией участника.
func (s *ProposalService) ownedProposal(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.Repo.GetProposalByID(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if proposal.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("proposal belongs to another organization")
	}
	return proposal, nil
}

// transition проверяет переход по таблице и выполняет его.
// Повторная подача того же целевого статуса отклоняется, а не схлопывается в no-op.
func (s *ProposalService) transition(ctx context.Context, proposal *models.Proposal, target models.ProposalStatus) (*models.Proposal, error) {
	if proposal.IsArchived {
		return nil, models.NewValidationError("archived proposal versions are read-only")
	}
	validTransitions := models.AllowedProposalTransitions[proposal.Status]
	if !utils.ContainsProposalStatus(validTransitions, target) {
		return nil, models.NewInvalidTransitionError(string(proposal.Status), string(target))
	}
	return s.Repo.UpdateProposalStatus(ctx, proposal.ID, target, time.Now().UTC())
}

// Finalize переводит черновик в FINAL. Каждый обязательный раздел тендера
// должен иметь непустой ответ, иначе возвращается список незаполненных разделов.
func (s *ProposalService) Finalize(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.DraftProposal {
		return nil, models.NewInvalidTransitionError(string(proposal.Status), string(models.FinalProposal))
	}

	incomplete, err := s.Repo.GetIncompleteMandatorySections(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if len(incomplete) > 0 {
		return nil, models.NewIncompleteSectionsError(incomplete)
	}
	return s.transition(ctx, proposal, models.FinalProposal)
}

// Publish публикует финализированное предложение. Публикация необратима,
// дальнейшие правки идут только через создание новой версии.
func (s *ProposalService) Publish(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, proposal, models.PublishedProposal)
}

// RevertToDraft возвращает финализированное предложение в черновик
// и сбрасывает finalized_at. Из PUBLISHED возврата нет.
func (s *ProposalService) RevertToDraft(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.FinalProposal {
		return nil, models.NewInvalidTransitionError(string(proposal.Status), string(models.DraftProposal))
	}
	return s.transition(ctx, proposal, models.DraftProposal)
}

// Submit подает черновик заказчику. Для участника подача терминальна.
func (s *ProposalService) Submit(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, proposal, models.SubmittedProposal)
}

// reviewedProposal загружает предложение и проверяет, что вызывающая
// организация владеет тендером.
func (s *ProposalService) reviewedProposal(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.Repo.GetProposalByID(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	tender, err := s.Tenders.GetTenderByID(ctx, proposal.TenderID)
	if err != nil {
		return nil, err
	}
	if tender.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("tender belongs to another organization")
	}
	return proposal, nil
}

// StartReview берет поданное предложение на рассмотрение заказчиком.
func (s *ProposalService) StartReview(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.reviewedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, proposal, models.UnderReviewProposal)
}

// Decide принимает или отклоняет рассматриваемое предложение. Оба исхода терминальны.
func (s *ProposalService) Decide(ctx context.Context, proposalId string, accepted bool, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.reviewedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	target := models.RejectedProposal
	if accepted {
		target = models.AcceptedProposal
	}
	return s.transition(ctx, proposal, target)
}

// CreateNewVersion создает следующую версию опубликованного предложения.
// Прошлая версия архивируется и остается читаемым срезом.
func (s *ProposalService) CreateNewVersion(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.PublishedProposal {
		return nil, models.NewInvalidTransitionError(string(proposal.Status), string(models.DraftProposal))
	}
	if proposal.IsArchived {
		return nil, models.NewValidationError("archived proposal versions are read-only")
	}
	return s.Repo.CreateNewVersion(ctx, proposal, time.Now().UTC())
}

// GetVersionHistory возвращает историю версий предложения организации по тендеру.
func (s *ProposalService) GetVersionHistory(ctx context.Context, tenderId string, user models.UserIdentity) ([]models.ProposalVersion, error) {
	if _, err := s.Tenders.GetTenderByID(ctx, tenderId); err != nil {
		return nil, err
	}
	return s.Repo.GetVersionHistory(ctx, tenderId, user.OrganizationID)
}

// GetVersionSnapshot возвращает полный срез одной версии предложения.
func (s *ProposalService) GetVersionSnapshot(ctx context.Context, tenderId string, version int, user models.UserIdentity) (*models.ProposalSnapshot, error) {
	if version < 1 {
		return nil, models.NewValidationError("version must be a positive integer")
	}
	if _, err := s.Tenders.GetTenderByID(ctx, tenderId); err != nil {
		return nil, err
	}
	return s.Repo.GetVersionSnapshot(ctx, tenderId, user.OrganizationID, version)
}

// UpdateOwnSectionResponse сохраняет ответ владельца предложения на раздел.
// Содержимое можно менять только в черновике.
func (s *ProposalService) UpdateOwnSectionResponse(ctx context.Context, proposalId, sectionId, content string, user models.UserIdentity) (*models.SectionResponse, error) {
	proposal, err := s.ownedProposal(ctx, proposalId, user)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.DraftProposal {
		return nil, models.NewValidationError("section responses can only be edited while the proposal is in draft")
	}
	section, err := s.Tenders.GetSectionByID(ctx, sectionId)
	if err != nil {
		return nil, err
	}
	if section.TenderID != proposal.TenderID {
		return nil, models.NewValidationError("section does not belong to the proposal's tender")
	}
	return s.Repo.UpsertSectionResponse(ctx, proposalId, sectionId, content, user.UserID)
}

// GetSectionResponses возвращает ответы предложения в порядке разделов.
func (s *ProposalService) GetSectionResponses(ctx context.Context, proposalId string, user models.UserIdentity) ([]models.SectionResponse, error) {
	if _, err := s.GetProposalByID(ctx, proposalId, user); err != nil {
		return nil, err
	}
	return s.Repo.GetSectionResponses(ctx, proposalId)
}
