package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/agneltms/procurement-service/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON.
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ServiceError{Message: message}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendServiceError отображает класс ошибки сервисного слоя в HTTP-статус.
func SendServiceError(w http.ResponseWriter, serviceErr *models.ServiceError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForErrorKind(serviceErr.Kind))
	if err := json.NewEncoder(w).Encode(serviceErr); err != nil {
		log.Println(err)
	}
}

// StatusForErrorKind возвращает HTTP-статус для класса ошибки.
func StatusForErrorKind(kind models.ErrorKind) int {
	switch kind {
	case models.AuthorizationErrorKind:
		return http.StatusForbidden
	case models.NotFoundErrorKind:
		return http.StatusNotFound
	case models.ValidationErrorKind:
		return http.StatusBadRequest
	case models.InvalidTransitionErrorKind:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ParseLimitOffset обрабатывает limit и offset.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ParseNumeric разбирает строковое числовое поле запроса.
// Нечисловое значение отклоняется до какой-либо записи в хранилище.
func ParseNumeric(field, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return parsed, nil
}

// ContainsProposalStatus - функция для проверки перехода у предложений.
func ContainsProposalStatus(validTransitions []models.ProposalStatus, newStatus models.ProposalStatus) bool {
	for _, validStatus := range validTransitions {
		if validStatus == newStatus {
			return true
		}
	}
	return false
}
