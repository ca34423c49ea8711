package services

import (
	"context"
	"testing"

	"github.com/agneltms/procurement-service/internal/models"

	"github.com/stretchr/testify/require"
)

var assisterUser = models.UserIdentity{UserID: "user-assister", OrganizationID: "org-assister", Role: models.AssisterRole}

type collaborationTestEnv struct {
	collaborators *fakeCollaboratorRepo
	uploaded      *fakeUploadedTenderRepo
	service       *CollaborationService
	resolver      *PermissionResolver
	proposalEnv   *proposalTestEnv
	proposal      *models.Proposal
}

func newCollaborationTestEnv(t *testing.T) *collaborationTestEnv {
	t.Helper()

	proposalEnv := newProposalTestEnv(t)
	collaborators := newFakeCollaboratorRepo()
	comments := newFakeCommentRepo()
	uploaded := newFakeUploadedTenderRepo(collaborators)
	resolver := NewPermissionResolver(collaborators)
	service := NewCollaborationService(collaborators, comments, proposalEnv.proposals, uploaded, resolver)

	proposal := proposalEnv.newDraft(t, bidderUser)

	return &collaborationTestEnv{
		collaborators: collaborators,
		uploaded:      uploaded,
		service:       service,
		resolver:      resolver,
		proposalEnv:   proposalEnv,
		proposal:      proposal,
	}
}

func (e *collaborationTestEnv) grant(t *testing.T, userId string, permission models.Permission) {
	t.Helper()
	_, err := e.service.AssignCollaborator(context.Background(), e.proposal.ID, e.proposalEnv.mandatory.ID, userId, permission, bidderUser)
	require.NoError(t, err)
}

func TestAssignCollaborator(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID

	// Назначать может только организация-владелец предложения.
	_, err := env.service.AssignCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, models.EditPermission, authorityUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	_, err = env.service.AssignCollaborator(ctx, env.proposal.ID, sectionId, "", models.EditPermission, bidderUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	_, err = env.service.AssignCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, models.NoPermission, bidderUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	collab, err := env.service.AssignCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, models.ReadAndCommentPermission, bidderUser)
	require.NoError(t, err)
	require.Equal(t, models.ReadAndCommentPermission, collab.Permission)
	require.Equal(t, bidderUser.UserID, collab.AssignedBy)

	// Повторное назначение обновляет уровень доступа.
	collab, err = env.service.AssignCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, models.EditPermission, bidderUser)
	require.NoError(t, err)
	require.Equal(t, models.EditPermission, collab.Permission)

	permission, err := env.resolver.ResolvePermission(ctx, assisterUser.UserID, env.proposal.ID, sectionId)
	require.NoError(t, err)
	require.Equal(t, models.EditPermission, permission)
}

func TestResolvePermissionIsExactMatch(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	env.grant(t, assisterUser.UserID, models.EditPermission)

	// Назначение действует только на свой раздел, роль учетной записи не влияет.
	permission, err := env.resolver.ResolvePermission(ctx, assisterUser.UserID, env.proposal.ID, env.proposalEnv.optional.ID)
	require.NoError(t, err)
	require.Equal(t, models.NoPermission, permission)

	permission, err = env.resolver.ResolvePermission(ctx, authorityUser.UserID, env.proposal.ID, env.proposalEnv.mandatory.ID)
	require.NoError(t, err)
	require.Equal(t, models.NoPermission, permission)
}

func TestSectionContentAccess(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID

	// Без назначения чужой пользователь раздел не видит.
	_, err := env.service.GetSectionContent(ctx, env.proposal.ID, sectionId, assisterUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	env.grant(t, assisterUser.UserID, models.ReadAndCommentPermission)

	content, err := env.service.GetSectionContent(ctx, env.proposal.ID, sectionId, assisterUser)
	require.NoError(t, err)
	require.Nil(t, content.Response)
	require.False(t, content.CanEdit)
	require.True(t, content.CanComment)

	// Участник организации-владельца имеет неявный EDIT без назначения.
	content, err = env.service.GetSectionContent(ctx, env.proposal.ID, sectionId, bidderUser)
	require.NoError(t, err)
	require.True(t, content.CanEdit)
	require.True(t, content.CanComment)
}

func TestUpdateSectionContentRequiresEdit(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID
	env.grant(t, assisterUser.UserID, models.ReadAndCommentPermission)

	// Права на комментарии для записи недостаточно.
	_, err := env.service.UpdateSectionContent(ctx, env.proposal.ID, sectionId, "draft text", assisterUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	env.grant(t, assisterUser.UserID, models.EditPermission)
	response, err := env.service.UpdateSectionContent(ctx, env.proposal.ID, sectionId, "draft text", assisterUser)
	require.NoError(t, err)
	require.Equal(t, "draft text", response.Content)
	require.Equal(t, assisterUser.UserID, response.LastEditedBy)

	content, err := env.service.GetSectionContent(ctx, env.proposal.ID, sectionId, assisterUser)
	require.NoError(t, err)
	require.NotNil(t, content.Response)
	require.Equal(t, "draft text", content.Response.Content)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID
	env.grant(t, assisterUser.UserID, models.ReadAndCommentPermission)

	_, err := env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{}, assisterUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	_, err = env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{
		Text:   "bad anchor",
		Anchor: &models.CommentAnchor{StartOffset: 10, EndOffset: 4},
	}, assisterUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	_, err = env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{Text: "no access"}, rivalUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	comment, err := env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{
		Text:   "please clarify the timeline",
		Anchor: &models.CommentAnchor{StartOffset: 0, EndOffset: 8, QuotedText: "timeline"},
	}, assisterUser)
	require.NoError(t, err)
	require.NotNil(t, comment.Anchor)
	require.Equal(t, "timeline", comment.Anchor.QuotedText)

	// Ответ должен жить в той же ветке раздела.
	_, err = env.service.AddComment(ctx, env.proposal.ID, env.proposalEnv.optional.ID, models.CommentRequest{
		Text:     "misplaced reply",
		ParentID: &comment.ID,
	}, bidderUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	reply, err := env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{
		Text:     "will update tomorrow",
		ParentID: &comment.ID,
	}, bidderUser)
	require.NoError(t, err)
	require.Equal(t, comment.ID, *reply.ParentID)

	comments, err := env.service.ListComments(ctx, env.proposal.ID, sectionId, assisterUser)
	require.NoError(t, err)
	require.Len(t, comments, 2)
}

func TestResolveComment(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID
	env.grant(t, assisterUser.UserID, models.ReadAndCommentPermission)

	comment, err := env.service.AddComment(ctx, env.proposal.ID, sectionId, models.CommentRequest{Text: "typo in clause 3"}, assisterUser)
	require.NoError(t, err)

	_, err = env.service.ResolveComment(ctx, comment.ID, rivalUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	resolved, err := env.service.ResolveComment(ctx, comment.ID, bidderUser)
	require.NoError(t, err)
	require.True(t, resolved.IsResolved)
	require.Equal(t, bidderUser.UserID, *resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = env.service.ResolveComment(ctx, "missing-comment", bidderUser)
	require.True(t, models.IsServiceError(err, models.NotFoundErrorKind))
}

func TestRemoveCollaborator(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	sectionId := env.proposalEnv.mandatory.ID
	env.grant(t, assisterUser.UserID, models.EditPermission)

	err := env.service.RemoveCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, authorityUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	err = env.service.RemoveCollaborator(ctx, env.proposal.ID, sectionId, assisterUser.UserID, bidderUser)
	require.NoError(t, err)

	_, err = env.service.GetSectionContent(ctx, env.proposal.ID, sectionId, assisterUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))
}

func TestUploadedTenderAssignments(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)

	uploaded, err := env.uploaded.CreateUploadedTender(ctx, "Imported RFP", bidderUser)
	require.NoError(t, err)

	_, err = env.service.AssignUploadedTenderCollaborator(ctx, uploaded.ID, "pricing", assisterUser.UserID, models.ReadAndCommentPermission, authorityUser)
	require.True(t, models.IsServiceError(err, models.AuthorizationErrorKind))

	_, err = env.service.AssignUploadedTenderCollaborator(ctx, uploaded.ID, "", assisterUser.UserID, models.ReadAndCommentPermission, bidderUser)
	require.True(t, models.IsServiceError(err, models.ValidationErrorKind))

	collab, err := env.service.AssignUploadedTenderCollaborator(ctx, uploaded.ID, "pricing", assisterUser.UserID, models.ReadAndCommentPermission, bidderUser)
	require.NoError(t, err)
	require.Equal(t, "pricing", collab.SectionKey)

	permission, err := env.resolver.ResolveUploadedTenderPermission(ctx, assisterUser.UserID, uploaded.ID, "pricing")
	require.NoError(t, err)
	require.Equal(t, models.ReadAndCommentPermission, permission)

	permission, err = env.resolver.ResolveUploadedTenderPermission(ctx, assisterUser.UserID, uploaded.ID, "legal")
	require.NoError(t, err)
	require.Equal(t, models.NoPermission, permission)
}

func TestListAssignments(t *testing.T) {
	ctx := context.Background()
	env := newCollaborationTestEnv(t)
	env.grant(t, assisterUser.UserID, models.EditPermission)

	uploaded, err := env.uploaded.CreateUploadedTender(ctx, "Imported RFP", bidderUser)
	require.NoError(t, err)
	_, err = env.service.AssignUploadedTenderCollaborator(ctx, uploaded.ID, "pricing", assisterUser.UserID, models.ReadAndCommentPermission, bidderUser)
	require.NoError(t, err)

	list, err := env.service.ListAssignments(ctx, assisterUser)
	require.NoError(t, err)
	require.Len(t, list.Assignments, 2)
	require.Equal(t, models.AssignmentSummary{Total: 2, CanEdit: 1, CanComment: 1}, list.Summary)

	// Свежее назначение идет первым.
	require.Equal(t, models.UploadedTenderAssignment, list.Assignments[0].Source)
	require.Equal(t, uploaded.ID, list.Assignments[0].TargetID)
	require.Equal(t, models.ProposalAssignment, list.Assignments[1].Source)

	empty, err := env.service.ListAssignments(ctx, rivalUser)
	require.NoError(t, err)
	require.Empty(t, empty.Assignments)
	require.Equal(t, 0, empty.Summary.Total)
}
