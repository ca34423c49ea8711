package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// identityFromRequest читает личность вызывающего из заголовков внешнего
// слоя аутентификации. Ядро аутентификацию не выполняет.
func identityFromRequest(r *http.Request) (models.UserIdentity, error) {
	user := models.UserIdentity{
		UserID:         r.Header.Get("X-User-Id"),
		OrganizationID: r.Header.Get("X-Organization-Id"),
		Role:           models.Role(r.Header.Get("X-User-Role")),
	}
	if user.UserID == "" || user.OrganizationID == "" {
		return user, errors.New("missing X-User-Id or X-Organization-Id header")
	}
	return user, nil
}

// writeJSON отправляет ответ в формате JSON.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError отображает ошибку сервисного слоя в HTTP-ответ,
// нетипизированные ошибки прячутся за общим сообщением.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var serviceErr *models.ServiceError
	if errors.As(err, &serviceErr) {
		logger.Warn("request rejected", zap.String("kind", string(serviceErr.Kind)), zap.Error(err))
		utils.SendServiceError(w, serviceErr)
		return
	}
	logger.Error(fallback, zap.Error(err))
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}
