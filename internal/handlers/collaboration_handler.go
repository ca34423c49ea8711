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

// CollaborationHandler - структура для обработки HTTP-запросов по совместной работе.
type CollaborationHandler struct {
	Service *services.CollaborationService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewCollaborationHandler создает новый экземпляр CollaborationHandler.
func NewCollaborationHandler(service *services.CollaborationService, logger *zap.Logger, timeout time.Duration) *CollaborationHandler {
	return &CollaborationHandler{Service: service, Logger: logger, Timeout: timeout}
}

// AssignCollaborator обрабатывает назначение доступа к разделу предложения.
func (h *CollaborationHandler) AssignCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var assignReq struct {
		UserID     string            `json:"userId"`
		Permission models.Permission `json:"permission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	collaborator, err := h.Service.AssignCollaborator(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), assignReq.UserID, assignReq.Permission, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to assign collaborator")
		return
	}
	writeJSON(w, h.Logger, collaborator)
}

// RemoveCollaborator обрабатывает снятие назначения доступа.
func (h *CollaborationHandler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	targetUserId := r.URL.Query().Get("userId")
	if targetUserId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: userId")
		return
	}

	if err := h.Service.RemoveCollaborator(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), targetUserId, user); err != nil {
		writeError(w, h.Logger, err, "failed to remove collaborator")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignUploadedTenderCollaborator обрабатывает назначение доступа
// к разделу загруженного тендера.
func (h *CollaborationHandler) AssignUploadedTenderCollaborator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var assignReq struct {
		SectionKey string            `json:"sectionKey"`
		UserID     string            `json:"userId"`
		Permission models.Permission `json:"permission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	collaborator, err := h.Service.AssignUploadedTenderCollaborator(ctx, r.PathValue("uploadedTenderId"), assignReq.SectionKey, assignReq.UserID, assignReq.Permission, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to assign collaborator")
		return
	}
	writeJSON(w, h.Logger, collaborator)
}

// GetSectionContent обрабатывает чтение содержимого раздела соисполнителем.
func (h *CollaborationHandler) GetSectionContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	content, err := h.Service.GetSectionContent(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve section content")
		return
	}
	writeJSON(w, h.Logger, content)
}

// UpdateSectionContent обрабатывает сохранение содержимого раздела соисполнителем.
func (h *CollaborationHandler) UpdateSectionContent(w http.ResponseWriter, r *http.Request) {
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

	response, err := h.Service.UpdateSectionContent(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), contentReq.Content, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to update section content")
		return
	}
	writeJSON(w, h.Logger, response)
}

// AddComment обрабатывает создание комментария к разделу.
func (h *CollaborationHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var commentReq models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.AddComment(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), commentReq, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to add comment")
		return
	}
	writeJSON(w, h.Logger, comment)
}

// ResolveComment обрабатывает пометку комментария решенным.
func (h *CollaborationHandler) ResolveComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	comment, err := h.Service.ResolveComment(ctx, r.PathValue("commentId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to resolve comment")
		return
	}
	writeJSON(w, h.Logger, comment)
}

// ListComments обрабатывает чтение комментариев раздела.
func (h *CollaborationHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	comments, err := h.Service.ListComments(ctx, r.PathValue("proposalId"), r.PathValue("sectionId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve comments")
		return
	}
	writeJSON(w, h.Logger, comments)
}

// ListAssignments обрабатывает запрос объединенного списка назначений пользователя.
func (h *CollaborationHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	assignments, err := h.Service.ListAssignments(ctx, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve assignments")
		return
	}
	writeJSON(w, h.Logger, assignments)
}
