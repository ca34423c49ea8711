package services

import (
	"context"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
	"github.com/agneltms/procurement-service/internal/repository"
)

type CollaborationService struct {
	Collaborators   repository.CollaboratorRepository
	Comments        repository.CommentRepository
	Proposals       repository.ProposalRepository
	UploadedTenders repository.UploadedTenderRepository
	Resolver        *PermissionResolver
}

// NewCollaborationService создает новый экземпляр CollaborationService.
func NewCollaborationService(
	collaborators repository.CollaboratorRepository,
	comments repository.CommentRepository,
	proposals repository.ProposalRepository,
	uploadedTenders repository.UploadedTenderRepository,
	resolver *PermissionResolver,
) *CollaborationService {
	return &CollaborationService{
		Collaborators:   collaborators,
		Comments:        comments,
		Proposals:       proposals,
		UploadedTenders: uploadedTenders,
		Resolver:        resolver,
	}
}

// ownedProposal загружает предложение и проверяет владение организацией вызывающего.
func (s *CollaborationService) ownedProposal(ctx context.Context, proposalId string, user models.UserIdentity) (*models.Proposal, error) {
	proposal, err := s.Proposals.GetProposalByID(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if proposal.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("proposal belongs to another organization")
	}
	return proposal, nil
}

// effectivePermission возвращает фактический доступ к разделу.
// Участник организации-владельца предложения имеет неявный EDIT,
// остальным доступ дает только запись о назначении.
func (s *CollaborationService) effectivePermission(ctx context.Context, proposalId, sectionId string, user models.UserIdentity) (models.Permission, error) {
	proposal, err := s.Proposals.GetProposalByID(ctx, proposalId)
	if err != nil {
		return models.NoPermission, err
	}
	if proposal.OrganizationID == user.OrganizationID {
		return models.EditPermission, nil
	}
	return s.Resolver.ResolvePermission(ctx, user.UserID, proposalId, sectionId)
}

// AssignCollaborator назначает пользователю доступ к разделу предложения.
// Повторное назначение обновляет уровень доступа.
func (s *CollaborationService) AssignCollaborator(ctx context.Context, proposalId, sectionId, targetUserId string, permission models.Permission, user models.UserIdentity) (*models.Collaborator, error) {
	if targetUserId == "" {
		return nil, models.NewValidationError("missing required field: userId")
	}
	if !models.ValidPermission(permission) {
		return nil, models.NewValidationError("permission must be EDIT or READ_AND_COMMENT")
	}
	if _, err := s.ownedProposal(ctx, proposalId, user); err != nil {
		return nil, err
	}
	return s.Collaborators.UpsertCollaborator(ctx, proposalId, sectionId, targetUserId, permission, user.UserID)
}

// RemoveCollaborator снимает назначение доступа.
func (s *CollaborationService) RemoveCollaborator(ctx context.Context, proposalId, sectionId, targetUserId string, user models.UserIdentity) error {
	if _, err := s.ownedProposal(ctx, proposalId, user); err != nil {
		return err
	}
	return s.Collaborators.RemoveCollaborator(ctx, proposalId, sectionId, targetUserId)
}

// AssignUploadedTenderCollaborator назначает доступ к разделу загруженного тендера.
func (s *CollaborationService) AssignUploadedTenderCollaborator(ctx context.Context, uploadedTenderId, sectionKey, targetUserId string, permission models.Permission, user models.UserIdentity) (*models.UploadedTenderCollaborator, error) {
	if targetUserId == "" || sectionKey == "" {
		return nil, models.NewValidationError("missing required field: userId or sectionKey")
	}
	if !models.ValidPermission(permission) {
		return nil, models.NewValidationError("permission must be EDIT or READ_AND_COMMENT")
	}
	uploaded, err := s.UploadedTenders.GetUploadedTenderByID(ctx, uploadedTenderId)
	if err != nil {
		return nil, err
	}
	if uploaded.OrganizationID != user.OrganizationID {
		return nil, models.NewAuthorizationError("uploaded tender belongs to another organization")
	}
	return s.UploadedTenders.UpsertCollaborator(ctx, uploadedTenderId, sectionKey, targetUserId, permission, user.UserID)
}

// GetSectionContent возвращает содержимое раздела с производными флагами доступа.
// Без какого-либо доступа запрос отклоняется.
func (s *CollaborationService) GetSectionContent(ctx context.Context, proposalId, sectionId string, user models.UserIdentity) (*models.SectionContent, error) {
	permission, err := s.effectivePermission(ctx, proposalId, sectionId, user)
	if err != nil {
		return nil, err
	}
	if permission == models.NoPermission {
		return nil, models.NewAuthorizationError("no access to this section")
	}

	response, err := s.Proposals.GetSectionResponse(ctx, proposalId, sectionId)
	if err != nil {
		return nil, err
	}
	return &models.SectionContent{
		Response:   response,
		CanEdit:    CanEdit(permission),
		CanComment: CanComment(permission),
	}, nil
}

// UpdateSectionContent сохраняет содержимое раздела. Требуется EDIT,
// права на комментарии недостаточно.
func (s *CollaborationService) UpdateSectionContent(ctx context.Context, proposalId, sectionId, content string, user models.UserIdentity) (*models.SectionResponse, error) {
	permission, err := s.effectivePermission(ctx, proposalId, sectionId, user)
	if err != nil {
		return nil, err
	}
	if !CanEdit(permission) {
		return nil, models.NewAuthorizationError("edit permission required")
	}
	return s.Proposals.UpsertSectionResponse(ctx, proposalId, sectionId, content, user.UserID)
}

// AddComment создает комментарий к разделу, при необходимости в ветке
// и с привязкой к выделенному фрагменту. Права EDIT не требуется.
func (s *CollaborationService) AddComment(ctx context.Context, proposalId, sectionId string, commentReq models.CommentRequest, user models.UserIdentity) (*models.Comment, error) {
	if commentReq.Text == "" {
		return nil, models.NewValidationError("missing required field: text")
	}
	if commentReq.Anchor != nil {
		if commentReq.Anchor.StartOffset < 0 || commentReq.Anchor.EndOffset < commentReq.Anchor.StartOffset {
			return nil, models.NewValidationError("invalid selection anchor offsets")
		}
	}

	permission, err := s.effectivePermission(ctx, proposalId, sectionId, user)
	if err != nil {
		return nil, err
	}
	if !CanComment(permission) {
		return nil, models.NewAuthorizationError("comment permission required")
	}

	if commentReq.ParentID != nil {
		parent, err := s.Comments.GetCommentByID(ctx, *commentReq.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ProposalID != proposalId || parent.SectionID != sectionId {
			return nil, models.NewValidationError("parent comment belongs to another section")
		}
	}
	return s.Comments.CreateComment(ctx, proposalId, sectionId, user.UserID, commentReq)
}

// ResolveComment помечает комментарий решенным.
func (s *CollaborationService) ResolveComment(ctx context.Context, commentId string, user models.UserIdentity) (*models.Comment, error) {
	comment, err := s.Comments.GetCommentByID(ctx, commentId)
	if err != nil {
		return nil, err
	}

	permission, err := s.effectivePermission(ctx, comment.ProposalID, comment.SectionID, user)
	if err != nil {
		return nil, err
	}
	if !CanComment(permission) {
		return nil, models.NewAuthorizationError("comment permission required")
	}
	return s.Comments.ResolveComment(ctx, commentId, user.UserID, time.Now().UTC())
}

// ListComments возвращает комментарии раздела. Отсутствие таблицы комментариев
// деградирует до пустого списка на уровне репозитория.
func (s *CollaborationService) ListComments(ctx context.Context, proposalId, sectionId string, user models.UserIdentity) ([]models.Comment, error) {
	permission, err := s.effectivePermission(ctx, proposalId, sectionId, user)
	if err != nil {
		return nil, err
	}
	if permission == models.NoPermission {
		return nil, models.NewAuthorizationError("no access to this section")
	}
	return s.Comments.ListComments(ctx, proposalId, sectionId)
}

// ListAssignments возвращает объединенный список назначений пользователя
// со сводкой по уровням доступа.
func (s *CollaborationService) ListAssignments(ctx context.Context, user models.UserIdentity) (*models.AssignmentList, error) {
	assignments, err := s.Collaborators.ListUserAssignments(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	summary := models.AssignmentSummary{Total: len(assignments)}
	for _, a := range assignments {
		switch a.Permission {
		case models.EditPermission:
			summary.CanEdit++
		case models.ReadAndCommentPermission:
			summary.CanComment++
		}
	}
	return &models.AssignmentList{Assignments: assignments, Summary: summary}, nil
}
