package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/services"
	"github.com/agneltms/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// ProposalHandler - структура для обработки HTTP-запросов по предложениям.
type ProposalHandler struct {
	Service *services.ProposalService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewProposalHandler создает новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, logger *zap.Logger, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{Service: service, Logger: logger, Timeout: timeout}
}

// proposalAction - общий каркас обработчика смены статуса предложения.
func (h *ProposalHandler) proposalAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error), fallback string) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	proposal, err := action(ctx, r.PathValue("proposalId"), user)
	if err != nil {
		writeError(w, h.Logger, err, fallback)
		return
	}
	writeJSON(w, h.Logger, proposal)
}

// CreateProposal обрабатывает запросы на создание предложения по тендеру.
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	proposal, err := h.Service.CreateProposal(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create proposal")
		return
	}
	writeJSON(w, h.Logger, proposal)
}

// GetProposal обрабатывает запросы на получение предложения.
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.GetProposalByID, "failed to retrieve proposal")
}

// FinalizeProposal обрабатывает запросы на финализацию предложения.
func (h *ProposalHandler) FinalizeProposal(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.Finalize, "failed to finalize proposal")
}

// PublishProposal обрабатывает запросы на публикацию предложения.
func (h *ProposalHandler) PublishProposal(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.Publish, "failed to publish proposal")
}

// RevertProposal обрабатывает запросы на возврат предложения в черновик.
func (h *ProposalHandler) RevertProposal(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.RevertToDraft, "failed to revert proposal")
}

// SubmitProposal обрабатывает запросы на подачу предложения.
func (h *ProposalHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.Submit, "failed to submit proposal")
}

// StartReview обрабатывает запросы на взятие предложения в рассмотрение.
func (h *ProposalHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.StartReview, "failed to start review")
}

// DecideProposal обрабатывает решение заказчика по предложению.
func (h *ProposalHandler) DecideProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var decisionReq struct {
		Accepted *bool `json:"accepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil || decisionReq.Accepted == nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required field: accepted")
		return
	}

	proposal, err := h.Service.Decide(ctx, r.PathValue("proposalId"), *decisionReq.Accepted, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to submit decision")
		return
	}
	writeJSON(w, h.Logger, proposal)
}

// CreateNewVersion обрабатывает запросы на создание новой версии предложения.
func (h *ProposalHandler) CreateNewVersion(w http.ResponseWriter, r *http.Request) {
	h.proposalAction(w, r, h.Service.CreateNewVersion, "failed to create new version")
}

// GetVersionHistory обрабатывает запросы на историю версий по тендеру.
func (h *ProposalHandler) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	versions, err := h.Service.GetVersionHistory(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve version history")
		return
	}
	writeJSON(w, h.Logger, versions)
}

// GetVersionSnapshot обрабатывает запросы на срез одной версии предложения.
func (h *ProposalHandler) GetVersionSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid version number")
		return
	}

	snapshot, err := h.Service.GetVersionSnapshot(ctx, r.PathValue("tenderId"), version, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve version snapshot")
		return
	}
	writeJSON(w, h.Logger, snapshot)
}

// UpdateSectionResponse обрабатывает сохранение ответа владельцем предложения.
func (h *ProposalHandler) UpdateSectionResponse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var contentReq struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&contentReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.Service.UpdateOwnSectionResponse(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), contentReq.Content, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to update section response")
		return
	}
	writeJSON(w, h.Logger, response)
}

// GetSectionResponses обрабатывает запросы на ответы предложения.
func (h *ProposalHandler) GetSectionResponses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	responses, err := h.Service.GetSectionResponses(ctx, r.PathValue("proposalId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve section responses")
		return
	}
	writeJSON(w, h.Logger, responses)
}
