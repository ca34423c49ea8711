package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/services"
	"github.com/agneltms/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// EvaluationHandler - структура для обработки HTTP-запросов по оценке заявок.
type EvaluationHandler struct {
	Service *services.EvaluationService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewEvaluationHandler создает новый экземпляр EvaluationHandler.
func NewEvaluationHandler(service *services.EvaluationService, logger *zap.Logger, timeout time.Duration) *EvaluationHandler {
	return &EvaluationHandler{Service: service, Logger: logger, Timeout: timeout}
}

// InitializeEvaluation обрабатывает запуск оценки по тендеру.
func (h *EvaluationHandler) InitializeEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	status, err := h.Service.InitializeTenderEvaluation(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to initialize evaluation")
		return
	}
	writeJSON(w, h.Logger, status)
}

// UpdateBidEvaluation обрабатывает частичное обновление оценки заявки.
func (h *EvaluationHandler) UpdateBidEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var evalReq models.BidEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&evalReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evaluation, err := h.Service.UpdateBidEvaluation(ctx, r.PathValue("proposalId"), evalReq, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to update bid evaluation")
		return
	}
	writeJSON(w, h.Logger, evaluation)
}

// CompleteEvaluation обрабатывает завершение оценки тендера.
func (h *EvaluationHandler) CompleteEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	status, err := h.Service.CompleteEvaluation(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to complete evaluation")
		return
	}
	writeJSON(w, h.Logger, status)
}

// GetBids обрабатывает запрос ранжированного списка заявок тендера.
func (h *EvaluationHandler) GetBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	bids, err := h.Service.GetBidsForTender(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve bids")
		return
	}
	writeJSON(w, h.Logger, bids)
}

// GetEvaluationDetails обрабатывает запрос агрегата оценки с заявками.
func (h *EvaluationHandler) GetEvaluationDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	details, err := h.Service.GetTenderEvaluationDetails(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve evaluation details")
		return
	}
	writeJSON(w, h.Logger, details)
}
