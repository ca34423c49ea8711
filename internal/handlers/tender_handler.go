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

// TenderHandler - структура для обработки HTTP-запросов по тендерам.
type TenderHandler struct {
	Service *services.TenderService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewTenderHandler создает новый экземпляр TenderHandler.
func NewTenderHandler(service *services.TenderService, logger *zap.Logger, timeout time.Duration) *TenderHandler {
	return &TenderHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateTender обрабатывает запросы на создание тендера.
func (h *TenderHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var tenderReq models.TenderRequest
	if err := json.NewDecoder(r.Body).Decode(&tenderReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newTender, err := h.Service.CreateTender(ctx, tenderReq, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create tender")
		return
	}
	writeJSON(w, h.Logger, newTender)
}

// GetTenders обрабатывает запросы на получение списка тендеров.
func (h *TenderHandler) GetTenders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statuses := r.URL.Query()["status"]

	tenders, err := h.Service.FetchTenders(ctx, limitStr, offsetStr, statuses)
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve tenders")
		return
	}
	writeJSON(w, h.Logger, tenders)
}

// GetTender обрабатывает запросы на получение одного тендера.
func (h *TenderHandler) GetTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tender, err := h.Service.GetTenderByID(ctx, r.PathValue("tenderId"))
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve tender")
		return
	}
	writeJSON(w, h.Logger, tender)
}

// PublishTender обрабатывает запросы на публикацию тендера.
func (h *TenderHandler) PublishTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	tender, err := h.Service.PublishTender(ctx, r.PathValue("tenderId"), user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to publish tender")
		return
	}
	writeJSON(w, h.Logger, tender)
}

// AddSection обрабатывает запросы на добавление раздела тендера.
func (h *TenderHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var sectionReq models.SectionRequest
	if err := json.NewDecoder(r.Body).Decode(&sectionReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	section, err := h.Service.AddSection(ctx, r.PathValue("tenderId"), sectionReq, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to add section")
		return
	}
	writeJSON(w, h.Logger, section)
}

// GetSections обрабатывает запросы на получение разделов тендера.
func (h *TenderHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	sections, err := h.Service.GetSections(ctx, r.PathValue("tenderId"))
	if err != nil {
		writeError(w, h.Logger, err, "failed to retrieve sections")
		return
	}
	writeJSON(w, h.Logger, sections)
}

// EditSection обрабатывает запросы на изменение раздела тендера.
func (h *TenderHandler) EditSection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// JSON-числа приходят как float64, приводим order_index к int.
	if orderIndex, ok := updateFields["orderIndex"].(float64); ok {
		updateFields["orderIndex"] = int(orderIndex)
	}

	section, err := h.Service.EditSection(ctx, r.PathValue("sectionId"), updateFields, user)
	if err != nil {
		writeError(w, h.Logger, err, "failed to edit section")
		return
	}
	writeJSON(w, h.Logger, section)
}

// DeleteSection обрабатывает запросы на удаление раздела тендера.
func (h *TenderHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := identityFromRequest(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.Service.DeleteSection(ctx, r.PathValue("sectionId"), user); err != nil {
		writeError(w, h.Logger, err, "failed to delete section")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
