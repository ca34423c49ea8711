package services

import (
	"context"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/repository"
	"github.com/agneltms/procurement-service/internal/utils"
)

type EvaluationService struct {
	Repo      repository.EvaluationRepository
	Tenders   repository.TenderRepository
	Proposals repository.ProposalRepository
}

// NewEvaluationService создает новый экземпляр EvaluationService.
func NewEvaluationService(repo repository.EvaluationRepository, tenders repository.TenderRepository, proposals repository.ProposalRepository) *EvaluationService {
	return &EvaluationService{Repo: repo, Tenders: tenders, Proposals: proposals}
}

// ownedTender загружает тендер и проверяет владение организацией вызывающего.
// Все операции оценки доступны только организации-владельцу тендера.
func (s *EvaluationService) ownedTender(ctx context.Context, tenderId string, user models.UserIdentity) (*models.Tender, error) {
	tender, err := s.Tenders.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	if tender.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("tender belongs to another organization")
	}
	return tender, nil
}

// InitializeTenderEvaluation создает агрегат оценки и по одной записи на каждое
// предложение. Вызов идемпотентен: существующий агрегат возвращается без изменений.
func (s *EvaluationService) InitializeTenderEvaluation(ctx context.Context, tenderId string, user models.UserIdentity) (*models.TenderEvaluationStatus, error) {
	if _, err := s.ownedTender(ctx, tenderId, user); err != nil {
		return nil, err
	}
	return s.Repo.InitializeTenderEvaluation(ctx, tenderId)
}

// UpdateBidEvaluation частично обновляет оценку заявки. Числовые поля
// проверяются до какой-либо записи, завершенная оценка тендера правки не принимает.
func (s *EvaluationService) UpdateBidEvaluation(ctx context.Context, proposalId string, evalReq models.BidEvaluationRequest, user models.UserIdentity) (*models.BidEvaluation, error) {
	proposal, err := s.Proposals.GetProposalByID(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if _, err = s.ownedTender(ctx, proposal.TenderID, user); err != nil {
		return nil, err
	}

	var update models.BidEvaluationUpdate

	if evalReq.BidAmount != nil {
		amount, err := utils.ParseNumeric("bidAmount", *evalReq.BidAmount)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		update.BidAmount = &amount
	}

	if evalReq.TechnicalScore != nil {
		score, err := utils.ParseNumeric("technicalScore", *evalReq.TechnicalScore)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		update.TechnicalScore = &score
	}

	if evalReq.TechnicalStatus != nil {
		if !models.ValidTechnicalStatus(*evalReq.TechnicalStatus) {
			return nil, models.NewValidationError("technicalStatus must be PENDING, QUALIFIED or DISQUALIFIED")
		}
		update.TechnicalStatus = evalReq.TechnicalStatus
	}

	update.Remarks = evalReq.Remarks

	status, err := s.Repo.GetTenderEvaluationStatus(ctx, proposal.TenderID)
	if err != nil {
		return nil, err
	}
	if status.EvaluationStatus == models.CompletedEvaluation {
		return nil, models.NewInvalidTransitionError(string(models.CompletedEvaluation), string(models.InProgressEvaluation))
	}

	return s.Repo.UpdateBidEvaluation(ctx, proposalId, update, user.UserID, time.Now().UTC())
}

// CompleteEvaluation вычисляет L1 и закрывает оценку тендера. Переход терминальный.
// Без квалифицированных заявок завершение проходит с пустым L1.
func (s *EvaluationService) CompleteEvaluation(ctx context.Context, tenderId string, user models.UserIdentity) (*models.TenderEvaluationStatus, error) {
	if _, err := s.ownedTender(ctx, tenderId, user); err != nil {
		return nil, err
	}
	return s.Repo.CompleteEvaluation(ctx, tenderId, time.Now().UTC())
}

// GetBidsForTender возвращает ранжированный список заявок без изменения состояния.
func (s *EvaluationService) GetBidsForTender(ctx context.Context, tenderId string, user models.UserIdentity) ([]models.BidEvaluation, error) {
	if _, err := s.ownedTender(ctx, tenderId, user); err != nil {
		return nil, err
	}
	return s.Repo.GetBidsForTender(ctx, tenderId)
}

// GetTenderEvaluationDetails возвращает агрегат тендера вместе с ранжированными заявками.
func (s *EvaluationService) GetTenderEvaluationDetails(ctx context.Context, tenderId string, user models.UserIdentity) (*models.TenderEvaluationDetails, error) {
	if _, err := s.ownedTender(ctx, tenderId, user); err != nil {
		return nil, err
	}

	status, err := s.Repo.GetTenderEvaluationStatus(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	bids, err := s.Repo.GetBidsForTender(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	return &models.TenderEvaluationDetails{Status: *status, Bids: bids}, nil
}
