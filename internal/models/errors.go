package models

import (
	"errors"
	"fmt"
)

type ErrorKind string // Класс ошибки сервисного слоя

const (
	AuthorizationErrorKind     ErrorKind = "authorization"      // Нет прав на операцию
	NotFoundErrorKind          ErrorKind = "not_found"          // Объект не найден
	ValidationErrorKind        ErrorKind = "validation"         // Некорректные входные данные
	InvalidTransitionErrorKind ErrorKind = "invalid_transition" // Переход запрещен таблицей переходов
	InternalErrorKind          ErrorKind = "internal"           // Внутренняя ошибка
)

// ServiceError описывает типизированную ошибку сервисного слоя.
// Транспортный слой сам решает, как отобразить Kind в код ответа.
type ServiceError struct {
	Kind               ErrorKind `json:"-"`
	Message            string    `json:"reason"`
	IncompleteSections []string  `json:"incompleteSections,omitempty"`
}

// Error реализует интерфейс error.
func (e *ServiceError) Error() string {
	return e.Message
}

// NewAuthorizationError создает ошибку отсутствия прав.
func NewAuthorizationError(message string) *ServiceError {
	return &ServiceError{Kind: AuthorizationErrorKind, Message: message}
}

// NewNotFoundError создает ошибку отсутствия объекта.
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: NotFoundErrorKind, Message: message}
}

// NewValidationError создает ошибку валидации входных данных.
func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: ValidationErrorKind, Message: message}
}

// NewIncompleteSectionsError создает ошибку валидации со списком незаполненных
// обязательных разделов, чтобы вызывающая сторона могла их подсветить.
func NewIncompleteSectionsError(sectionIds []string) *ServiceError {
	return &ServiceError{
		Kind:               ValidationErrorKind,
		Message:            "mandatory sections are missing responses",
		IncompleteSections: sectionIds,
	}
}

// NewInvalidTransitionError создает ошибку запрещенного перехода статусов.
func NewInvalidTransitionError(from, to string) *ServiceError {
	return &ServiceError{
		Kind:    InvalidTransitionErrorKind,
		Message: fmt.Sprintf("invalid transition from %s to %s", from, to),
	}
}

// NewInternalError создает внутреннюю ошибку.
func NewInternalError(message string) *ServiceError {
	return &ServiceError{Kind: InternalErrorKind, Message: message}
}

// IsServiceError проверяет, что ошибка пришла из сервисного слоя с данным классом.
func IsServiceError(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}
