package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agneltms/procurement-service/internal/models"
)

// Ручные in-memory дублеры репозиториев для тестов сервисного слоя.

type fakeTenderRepo struct {
	tenders  map[string]*models.Tender
	sections map[string]*models.Section
	nextId   int
}

func newFakeTenderRepo() *fakeTenderRepo {
	return &fakeTenderRepo{
		tenders:  make(map[string]*models.Tender),
		sections: make(map[string]*models.Section),
	}
}

func (f *fakeTenderRepo) newId(prefix string) string {
	f.nextId++
	return fmt.Sprintf("%s-%d", prefix, f.nextId)
}

func (f *fakeTenderRepo) CreateTender(_ context.Context, tenderReq models.TenderRequest, user models.UserIdentity) (*models.Tender, error) {
	t := &models.Tender{
		ID:             f.newId("tender"),
		Title:          tenderReq.Title,
		Status:         models.DraftTender,
		Deadline:       tenderReq.Deadline,
		Value:          tenderReq.Value,
		OrganizationID: user.OrganizationID,
		CreatedBy:      user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	f.tenders[t.ID] = t
	return t, nil
}

func (f *fakeTenderRepo) GetTenders(_ context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	var out []models.Tender
	for _, t := range f.tenders {
		if len(statuses) > 0 && !containsString(statuses, string(t.Status)) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTenderRepo) GetTenderByID(_ context.Context, tenderId string) (*models.Tender, error) {
	t, ok := f.tenders[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender not found")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTenderRepo) PublishTender(_ context.Context, tenderId string, publishedAt time.Time) (*models.Tender, error) {
	t, ok := f.tenders[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender not found")
	}
	t.Status = models.PublishedTender
	t.PublishedAt = &publishedAt
	copied := *t
	return &copied, nil
}

func (f *fakeTenderRepo) CreateSection(_ context.Context, tenderId string, sectionReq models.SectionRequest, orderIndex int) (*models.Section, error) {
	s := &models.Section{
		ID:          f.newId("section"),
		TenderID:    tenderId,
		Title:       sectionReq.Title,
		Description: sectionReq.Description,
		OrderIndex:  orderIndex,
		IsMandatory: sectionReq.IsMandatory,
		CreatedAt:   time.Now().UTC(),
	}
	f.sections[s.ID] = s
	return s, nil
}

func (f *fakeTenderRepo) UpdateSection(_ context.Context, sectionId string, updateFields map[string]interface{}) (*models.Section, error) {
	s, ok := f.sections[sectionId]
	if !ok {
		return nil, models.NewNotFoundError("section not found")
	}
	if title, ok := updateFields["title"].(string); ok && title != "" {
		s.Title = title
	}
	if description, ok := updateFields["description"].(string); ok {
		s.Description = description
	}
	if orderIndex, ok := updateFields["orderIndex"].(int); ok {
		s.OrderIndex = orderIndex
	}
	if isMandatory, ok := updateFields["isMandatory"].(bool); ok {
		s.IsMandatory = isMandatory
	}
	copied := *s
	return &copied, nil
}

func (f *fakeTenderRepo) DeleteSection(_ context.Context, sectionId string) error {
	delete(f.sections, sectionId)
	return nil
}

func (f *fakeTenderRepo) GetSections(_ context.Context, tenderId string) ([]models.Section, error) {
	var out []models.Section
	for _, s := range f.sections {
		if s.TenderID == tenderId {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeTenderRepo) GetSectionByID(_ context.Context, sectionId string) (*models.Section, error) {
	s, ok := f.sections[sectionId]
	if !ok {
		return nil, models.NewNotFoundError("section not found")
	}
	copied := *s
	return &copied, nil
}

func (f *fakeTenderRepo) GetMaxOrderIndex(_ context.Context, tenderId string) (int, error) {
	maxIndex := -1
	for _, s := range f.sections {
		if s.TenderID == tenderId && s.OrderIndex > maxIndex {
			maxIndex = s.OrderIndex
		}
	}
	return maxIndex, nil
}

func (f *fakeTenderRepo) OrderIndexTaken(_ context.Context, tenderId string, orderIndex int) (bool, error) {
	for _, s := range f.sections {
		if s.TenderID == tenderId && s.OrderIndex == orderIndex {
			return true, nil
		}
	}
	return false, nil
}

type fakeProposalRepo struct {
	tenders   *fakeTenderRepo
	proposals map[string]*models.Proposal
	responses map[string]map[string]*models.SectionResponse
	nextId    int
}

func newFakeProposalRepo(tenders *fakeTenderRepo) *fakeProposalRepo {
	return &fakeProposalRepo{
		tenders:   tenders,
		proposals: make(map[string]*models.Proposal),
		responses: make(map[string]map[string]*models.SectionResponse),
	}
}

func (f *fakeProposalRepo) newId(prefix string) string {
	f.nextId++
	return fmt.Sprintf("%s-%d", prefix, f.nextId)
}

func (f *fakeProposalRepo) CreateProposal(_ context.Context, tenderId string, user models.UserIdentity) (*models.Proposal, error) {
	p := &models.Proposal{
		ID:             f.newId("proposal"),
		TenderID:       tenderId,
		OrganizationID: user.OrganizationID,
		Status:         models.DraftProposal,
		Version:        1,
		CreatedBy:      user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	f.proposals[p.ID] = p
	return p, nil
}

func (f *fakeProposalRepo) GetProposalByID(_ context.Context, proposalId string) (*models.Proposal, error) {
	p, ok := f.proposals[proposalId]
	if !ok {
		return nil, models.NewNotFoundError("proposal not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProposalRepo) ActiveProposalExists(_ context.Context, tenderId, organizationId string) (bool, error) {
	for _, p := range f.proposals {
		if p.TenderID == tenderId && p.OrganizationID == organizationId && !p.IsArchived {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProposalRepo) UpdateProposalStatus(_ context.Context, proposalId string, status models.ProposalStatus, now time.Time) (*models.Proposal, error) {
	p, ok := f.proposals[proposalId]
	if !ok {
		return nil, models.NewNotFoundError("proposal not found")
	}
	p.Status = status
	switch status {
	case models.FinalProposal:
		p.FinalizedAt = &now
	case models.PublishedProposal:
		p.PublishedAt = &now
	case models.SubmittedProposal:
		p.SubmittedAt = &now
	case models.DraftProposal:
		p.FinalizedAt = nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProposalRepo) CreateNewVersion(_ context.Context, current *models.Proposal, now time.Time) (*models.Proposal, error) {
	for _, p := range f.proposals {
		if p.TenderID == current.TenderID && p.OrganizationID == current.OrganizationID && p.Version == current.Version+1 {
			return nil, models.NewValidationError("next proposal version already exists")
		}
	}
	f.proposals[current.ID].IsArchived = true

	next := &models.Proposal{
		ID:             f.newId("proposal"),
		TenderID:       current.TenderID,
		OrganizationID: current.OrganizationID,
		Status:         models.DraftProposal,
		Version:        current.Version + 1,
		CreatedBy:      current.CreatedBy,
		CreatedAt:      now,
	}
	f.proposals[next.ID] = next

	for sectionId, sr := range f.responses[current.ID] {
		copied := *sr
		copied.ID = f.newId("response")
		copied.ProposalID = next.ID
		copied.UpdatedAt = now
		if f.responses[next.ID] == nil {
			f.responses[next.ID] = make(map[string]*models.SectionResponse)
		}
		f.responses[next.ID][sectionId] = &copied
	}
	return next, nil
}

func (f *fakeProposalRepo) GetVersionHistory(_ context.Context, tenderId, organizationId string) ([]models.ProposalVersion, error) {
	var out []models.ProposalVersion
	for _, p := range f.proposals {
		if p.TenderID != tenderId || p.OrganizationID != organizationId {
			continue
		}
		out = append(out, models.ProposalVersion{
			ProposalID:  p.ID,
			Version:     p.Version,
			Status:      p.Status,
			IsArchived:  p.IsArchived,
			CreatedAt:   p.CreatedAt,
			PublishedAt: p.PublishedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (f *fakeProposalRepo) GetVersionSnapshot(ctx context.Context, tenderId, organizationId string, version int) (*models.ProposalSnapshot, error) {
	for _, p := range f.proposals {
		if p.TenderID == tenderId && p.OrganizationID == organizationId && p.Version == version {
			responses, _ := f.GetSectionResponses(ctx, p.ID)
			return &models.ProposalSnapshot{Proposal: *p, Responses: responses}, nil
		}
	}
	return nil, models.NewNotFoundError("proposal version not found")
}

func (f *fakeProposalRepo) GetSectionResponses(_ context.Context, proposalId string) ([]models.SectionResponse, error) {
	var out []models.SectionResponse
	for _, sr := range f.responses[proposalId] {
		out = append(out, *sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionID < out[j].SectionID })
	return out, nil
}

func (f *fakeProposalRepo) GetSectionResponse(_ context.Context, proposalId, sectionId string) (*models.SectionResponse, error) {
	sr, ok := f.responses[proposalId][sectionId]
	if !ok {
		return nil, nil
	}
	copied := *sr
	return &copied, nil
}

func (f *fakeProposalRepo) UpsertSectionResponse(_ context.Context, proposalId, sectionId, content, editorId string) (*models.SectionResponse, error) {
	if f.responses[proposalId] == nil {
		f.responses[proposalId] = make(map[string]*models.SectionResponse)
	}
	sr, ok := f.responses[proposalId][sectionId]
	if !ok {
		sr = &models.SectionResponse{
			ID:         f.newId("response"),
			ProposalID: proposalId,
			SectionID:  sectionId,
		}
		f.responses[proposalId][sectionId] = sr
	}
	sr.Content = content
	sr.LastEditedBy = editorId
	sr.UpdatedAt = time.Now().UTC()
	copied := *sr
	return &copied, nil
}

func (f *fakeProposalRepo) GetIncompleteMandatorySections(_ context.Context, proposalId string) ([]string, error) {
	p, ok := f.proposals[proposalId]
	if !ok {
		return nil, models.NewNotFoundError("proposal not found")
	}
	var mandatory []models.Section
	for _, s := range f.tenders.sections {
		if s.TenderID == p.TenderID && s.IsMandatory {
			mandatory = append(mandatory, *s)
		}
	}
	sort.Slice(mandatory, func(i, j int) bool { return mandatory[i].OrderIndex < mandatory[j].OrderIndex })

	var incomplete []string
	for _, s := range mandatory {
		sr, ok := f.responses[proposalId][s.ID]
		if !ok || strings.TrimSpace(sr.Content) == "" {
			incomplete = append(incomplete, s.ID)
		}
	}
	return incomplete, nil
}

type collaboratorKey struct {
	targetId  string
	sectionId string
	userId    string
}

type fakeCollaboratorRepo struct {
	proposalGrants map[collaboratorKey]*models.Collaborator
	uploadedGrants map[collaboratorKey]*models.UploadedTenderCollaborator
	nextId         int
	clock          time.Time
}

func newFakeCollaboratorRepo() *fakeCollaboratorRepo {
	return &fakeCollaboratorRepo{
		proposalGrants: make(map[collaboratorKey]*models.Collaborator),
		uploadedGrants: make(map[collaboratorKey]*models.UploadedTenderCollaborator),
		clock:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeCollaboratorRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeCollaboratorRepo) UpsertCollaborator(_ context.Context, proposalId, sectionId, userId string, permission models.Permission, assignedBy string) (*models.Collaborator, error) {
	key := collaboratorKey{proposalId, sectionId, userId}
	f.nextId++
	c := &models.Collaborator{
		ID:         fmt.Sprintf("collab-%d", f.nextId),
		ProposalID: proposalId,
		SectionID:  sectionId,
		UserID:     userId,
		Permission: permission,
		AssignedBy: assignedBy,
		AssignedAt: f.tick(),
	}
	f.proposalGrants[key] = c
	copied := *c
	return &copied, nil
}

func (f *fakeCollaboratorRepo) RemoveCollaborator(_ context.Context, proposalId, sectionId, userId string) error {
	delete(f.proposalGrants, collaboratorKey{proposalId, sectionId, userId})
	return nil
}

func (f *fakeCollaboratorRepo) GetPermission(_ context.Context, userId, proposalId, sectionId string) (models.Permission, error) {
	if c, ok := f.proposalGrants[collaboratorKey{proposalId, sectionId, userId}]; ok {
		return c.Permission, nil
	}
	return models.NoPermission, nil
}

func (f *fakeCollaboratorRepo) GetUploadedTenderPermission(_ context.Context, userId, uploadedTenderId, sectionKey string) (models.Permission, error) {
	if c, ok := f.uploadedGrants[collaboratorKey{uploadedTenderId, sectionKey, userId}]; ok {
		return c.Permission, nil
	}
	return models.NoPermission, nil
}

func (f *fakeCollaboratorRepo) ListUserAssignments(_ context.Context, userId string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, c := range f.proposalGrants {
		if c.UserID != userId {
			continue
		}
		out = append(out, models.Assignment{
			ID:         c.ID,
			Source:     models.ProposalAssignment,
			TargetID:   c.ProposalID,
			SectionRef: c.SectionID,
			Permission: c.Permission,
			AssignedBy: c.AssignedBy,
			AssignedAt: c.AssignedAt,
		})
	}
	for _, c := range f.uploadedGrants {
		if c.UserID != userId {
			continue
		}
		out = append(out, models.Assignment{
			ID:         c.ID,
			Source:     models.UploadedTenderAssignment,
			TargetID:   c.UploadedTenderID,
			SectionRef: c.SectionKey,
			Permission: c.Permission,
			AssignedBy: c.AssignedBy,
			AssignedAt: c.AssignedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.After(out[j].AssignedAt) })
	return out, nil
}

type fakeUploadedTenderRepo struct {
	collaborators *fakeCollaboratorRepo
	uploaded      map[string]*models.UploadedTender
	nextId        int
}

func newFakeUploadedTenderRepo(collaborators *fakeCollaboratorRepo) *fakeUploadedTenderRepo {
	return &fakeUploadedTenderRepo{
		collaborators: collaborators,
		uploaded:      make(map[string]*models.UploadedTender),
	}
}

func (f *fakeUploadedTenderRepo) CreateUploadedTender(_ context.Context, title string, user models.UserIdentity) (*models.UploadedTender, error) {
	f.nextId++
	u := &models.UploadedTender{
		ID:             fmt.Sprintf("uploaded-%d", f.nextId),
		Title:          title,
		OrganizationID: user.OrganizationID,
		UploadedBy:     user.UserID,
		CreatedAt:      time.Now().UTC(),
	}
	f.uploaded[u.ID] = u
	return u, nil
}

func (f *fakeUploadedTenderRepo) GetUploadedTenderByID(_ context.Context, uploadedTenderId string) (*models.UploadedTender, error) {
	u, ok := f.uploaded[uploadedTenderId]
	if !ok {
		return nil, models.NewNotFoundError("uploaded tender not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUploadedTenderRepo) UpsertCollaborator(_ context.Context, uploadedTenderId, sectionKey, userId string, permission models.Permission, assignedBy string) (*models.UploadedTenderCollaborator, error) {
	key := collaboratorKey{uploadedTenderId, sectionKey, userId}
	f.collaborators.nextId++
	c := &models.UploadedTenderCollaborator{
		ID:               fmt.Sprintf("ucollab-%d", f.collaborators.nextId),
		UploadedTenderID: uploadedTenderId,
		SectionKey:       sectionKey,
		UserID:           userId,
		Permission:       permission,
		AssignedBy:       assignedBy,
		AssignedAt:       f.collaborators.tick(),
	}
	f.collaborators.uploadedGrants[key] = c
	copied := *c
	return &copied, nil
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
	nextId   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, proposalId, sectionId, userId string, commentReq models.CommentRequest) (*models.Comment, error) {
	f.nextId++
	c := &models.Comment{
		ID:         fmt.Sprintf("comment-%d", f.nextId),
		ProposalID: proposalId,
		SectionID:  sectionId,
		UserID:     userId,
		ParentID:   commentReq.ParentID,
		Text:       commentReq.Text,
		Anchor:     commentReq.Anchor,
		CreatedAt:  time.Now().UTC(),
	}
	f.comments[c.ID] = c
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, commentId string) (*models.Comment, error) {
	c, ok := f.comments[commentId]
	if !ok {
		return nil, models.NewNotFoundError("comment not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) ResolveComment(_ context.Context, commentId, resolvedBy string, resolvedAt time.Time) (*models.Comment, error) {
	c, ok := f.comments[commentId]
	if !ok {
		return nil, models.NewNotFoundError("comment not found")
	}
	c.IsResolved = true
	c.ResolvedBy = &resolvedBy
	c.ResolvedAt = &resolvedAt
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) ListComments(_ context.Context, proposalId, sectionId string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.ProposalID == proposalId && c.SectionID == sectionId {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeEvaluationRepo struct {
	proposals *fakeProposalRepo
	statuses  map[string]*models.TenderEvaluationStatus
	bids      map[string]*models.BidEvaluation
	nextId    int
	clock     time.Time
}

func newFakeEvaluationRepo(proposals *fakeProposalRepo) *fakeEvaluationRepo {
	return &fakeEvaluationRepo{
		proposals: proposals,
		statuses:  make(map[string]*models.TenderEvaluationStatus),
		bids:      make(map[string]*models.BidEvaluation),
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeEvaluationRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeEvaluationRepo) GetTenderEvaluationStatus(_ context.Context, tenderId string) (*models.TenderEvaluationStatus, error) {
	s, ok := f.statuses[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender evaluation not found")
	}
	copied := *s
	return &copied, nil
}

func (f *fakeEvaluationRepo) InitializeTenderEvaluation(_ context.Context, tenderId string) (*models.TenderEvaluationStatus, error) {
	if s, ok := f.statuses[tenderId]; ok {
		copied := *s
		return &copied, nil
	}

	total := 0
	for _, p := range f.proposals.proposals {
		if p.TenderID != tenderId || p.IsArchived {
			continue
		}
		total++
		if _, ok := f.bids[p.ID]; ok {
			continue
		}
		f.nextId++
		f.bids[p.ID] = &models.BidEvaluation{
			ID:              fmt.Sprintf("bid-%d", f.nextId),
			TenderID:        tenderId,
			ProposalID:      p.ID,
			TechnicalStatus: models.PendingTechnical,
			Status:          models.PendingEvaluation,
			CreatedAt:       f.tick(),
		}
	}

	f.nextId++
	s := &models.TenderEvaluationStatus{
		ID:                fmt.Sprintf("eval-%d", f.nextId),
		TenderID:          tenderId,
		EvaluationStatus:  models.InProgressEvaluation,
		TotalBidsReceived: total,
		CreatedAt:         f.tick(),
	}
	f.statuses[tenderId] = s
	copied := *s
	return &copied, nil
}

func (f *fakeEvaluationRepo) GetBidEvaluationByProposal(_ context.Context, proposalId string) (*models.BidEvaluation, error) {
	b, ok := f.bids[proposalId]
	if !ok {
		return nil, models.NewNotFoundError("bid evaluation not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeEvaluationRepo) UpdateBidEvaluation(_ context.Context, proposalId string, update models.BidEvaluationUpdate, evaluatedBy string, evaluatedAt time.Time) (*models.BidEvaluation, error) {
	b, ok := f.bids[proposalId]
	if !ok {
		return nil, models.NewNotFoundError("bid evaluation not found")
	}
	if update.BidAmount != nil {
		b.BidAmount = update.BidAmount
	}
	if update.TechnicalStatus != nil {
		b.TechnicalStatus = *update.TechnicalStatus
	}
	if update.TechnicalScore != nil {
		b.TechnicalScore = update.TechnicalScore
	}
	if update.Remarks != nil {
		b.Remarks = *update.Remarks
	}
	b.EvaluatedBy = &evaluatedBy
	b.EvaluatedAt = &evaluatedAt
	b.Status = models.InProgressEvaluation
	copied := *b
	return &copied, nil
}

func (f *fakeEvaluationRepo) CompleteEvaluation(_ context.Context, tenderId string, completedAt time.Time) (*models.TenderEvaluationStatus, error) {
	s, ok := f.statuses[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender evaluation not found")
	}
	if s.EvaluationStatus == models.CompletedEvaluation {
		return nil, models.NewInvalidTransitionError(string(s.EvaluationStatus), string(models.CompletedEvaluation))
	}

	var qualified, disqualified int
	var l1 *models.BidEvaluation
	for _, b := range f.bids {
		if b.TenderID != tenderId {
			continue
		}
		switch b.TechnicalStatus {
		case models.QualifiedTechnical:
			qualified++
			if b.BidAmount == nil {
				continue
			}
			if l1 == nil || *b.BidAmount < *l1.BidAmount ||
				(*b.BidAmount == *l1.BidAmount && b.CreatedAt.Before(l1.CreatedAt)) {
				l1 = b
			}
		case models.DisqualifiedTechnical:
			disqualified++
		}
	}

	s.EvaluationStatus = models.CompletedEvaluation
	s.QualifiedBids = qualified
	s.DisqualifiedBids = disqualified
	s.CompletedAt = &completedAt
	if l1 != nil {
		s.L1ProposalID = &l1.ProposalID
		s.L1Amount = l1.BidAmount
	}
	copied := *s
	return &copied, nil
}

func (f *fakeEvaluationRepo) GetBidsForTender(_ context.Context, tenderId string) ([]models.BidEvaluation, error) {
	var out []models.BidEvaluation
	for _, b := range f.bids {
		if b.TenderID == tenderId {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ranked := func(b models.BidEvaluation) bool {
			return b.TechnicalStatus == models.QualifiedTechnical && b.BidAmount != nil
		}
		if ranked(out[i]) != ranked(out[j]) {
			return ranked(out[i])
		}
		if ranked(out[i]) && *out[i].BidAmount != *out[j].BidAmount {
			return *out[i].BidAmount < *out[j].BidAmount
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
