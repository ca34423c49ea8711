package models

import "time"

type ProposalStatus string // Статус предложения

const (
	DraftProposal       ProposalStatus = "DRAFT"        // Предложение в черновике
	FinalProposal       ProposalStatus = "FINAL"        // Предложение финализировано
	PublishedProposal   ProposalStatus = "PUBLISHED"    // Предложение опубликовано, правки только через новую версию
	SubmittedProposal   ProposalStatus = "SUBMITTED"    // Предложение подано заказчику
	UnderReviewProposal ProposalStatus = "UNDER_REVIEW" // Предложение на рассмотрении
	AcceptedProposal    ProposalStatus = "ACCEPTED"     // Предложение принято
	RejectedProposal    ProposalStatus = "REJECTED"     // Предложение отклонено
)

// ValidProposalStatus проверяет, что статус предложения допустим.
func ValidProposalStatus(s ProposalStatus) bool {
	switch s {
	case DraftProposal, FinalProposal, PublishedProposal,
		SubmittedProposal, UnderReviewProposal, AcceptedProposal, RejectedProposal:
		return true
	default:
		return false
	}
}

// AllowedProposalTransitions - таблица переходов статусов предложения.
// Из PUBLISHED выхода нет, правки идут только через создание новой версии.
var AllowedProposalTransitions = map[ProposalStatus][]ProposalStatus{
	DraftProposal:       {FinalProposal, SubmittedProposal},
	FinalProposal:       {PublishedProposal, DraftProposal},
	PublishedProposal:   {},
	SubmittedProposal:   {UnderReviewProposal},
	UnderReviewProposal: {AcceptedProposal, RejectedProposal},
	AcceptedProposal:    {},
	RejectedProposal:    {},
}

// Proposal представляет модель предложения участника по тендеру.
type Proposal struct {
	ID             string         `json:"id"`
	TenderID       string         `json:"tenderId"`
	OrganizationID string         `json:"organizationId"`
	Status         ProposalStatus `json:"status"`
	Version        int            `json:"version"`
	IsArchived     bool           `json:"isArchived"`
	CreatedBy      string         `json:"createdBy"`
	CreatedAt      time.Time      `json:"createdAt"`
	FinalizedAt    *time.Time     `json:"finalizedAt,omitempty"`
	PublishedAt    *time.Time     `json:"publishedAt,omitempty"`
	SubmittedAt    *time.Time     `json:"submittedAt,omitempty"`
}

// SectionResponse представляет содержимое ответа на один раздел предложения.
type SectionResponse struct {
	ID           string    `json:"id"`
	ProposalID   string    `json:"proposalId"`
	SectionID    string    `json:"sectionId"`
	Content      string    `json:"content"`
	LastEditedBy string    `json:"lastEditedBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProposalVersion представляет метаданные одной версии в истории предложения.
type ProposalVersion struct {
	ProposalID  string         `json:"proposalId"`
	Version     int            `json:"version"`
	Status      ProposalStatus `json:"status"`
	IsArchived  bool           `json:"isArchived"`
	CreatedAt   time.Time      `json:"createdAt"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
}

// ProposalSnapshot представляет полный срез одной версии предложения.
type ProposalSnapshot struct {
	Proposal  Proposal          `json:"proposal"`
	Responses []SectionResponse `json:"responses"`
}
