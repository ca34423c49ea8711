package services

import (
	"context"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/repository"
)

// PermissionResolver вычисляет фактический доступ пользователя к разделу
// по записям назначений. Роль учетной записи на результат не влияет:
// доступ дает только запись о назначении.
type PermissionResolver struct {
	Repo repository.CollaboratorRepository
}

// NewPermissionResolver создает новый экземпляр PermissionResolver.
func NewPermissionResolver(repo repository.CollaboratorRepository) *PermissionResolver {
	return &PermissionResolver{Repo: repo}
}

// ResolvePermission возвращает доступ пользователя к разделу предложения.
func (p *PermissionResolver) ResolvePermission(ctx context.Context, userId, proposalId, sectionId string) (models.Permission, error) {
	return p.Repo.GetPermission(ctx, userId, proposalId, sectionId)
}

// ResolveUploadedTenderPermission возвращает доступ к разделу загруженного тендера.
func (p *PermissionResolver) ResolveUploadedTenderPermission(ctx context.Context, userId, uploadedTenderId, sectionKey string) (models.Permission, error) {
	return p.Repo.GetUploadedTenderPermission(ctx, userId, uploadedTenderId, sectionKey)
}

// CanEdit - производный флаг права редактирования.
func CanEdit(permission models.Permission) bool {
	return permission == models.EditPermission
}

// CanComment - производный флаг права комментирования.
// Комментировать может и редактор, и читатель с правом комментария.
func CanComment(permission models.Permission) bool {
	return permission == models.EditPermission || permission == models.ReadAndCommentPermission
}
