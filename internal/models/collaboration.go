package models

import "time"

type Permission string // Уровень доступа соисполнителя к разделу

const (
	EditPermission           Permission = "EDIT"             // Можно редактировать содержимое раздела
	ReadAndCommentPermission Permission = "READ_AND_COMMENT" // Можно читать и комментировать
	NoPermission             Permission = "NONE"             // Доступа нет
)

// ValidPermission проверяет, что назначаемый уровень доступа допустим.
// NONE назначить нельзя, это отсутствие записи.
func ValidPermission(p Permission) bool {
	switch p {
	case EditPermission, ReadAndCommentPermission:
		return true
	default:
		return false
	}
}

// Collaborator представляет назначение доступа пользователю на раздел предложения.
type Collaborator struct {
	ID         string     `json:"id"`
	ProposalID string     `json:"proposalId"`
	SectionID  string     `json:"sectionId"`
	UserID     string     `json:"userId"`
	Permission Permission `json:"permission"`
	AssignedBy string     `json:"assignedBy"`
	AssignedAt time.Time  `json:"assignedAt"`
}

// UploadedTenderCollaborator представляет назначение доступа на раздел загруженного тендера.
type UploadedTenderCollaborator struct {
	ID               string     `json:"id"`
	UploadedTenderID string     `json:"uploadedTenderId"`
	SectionKey       string     `json:"sectionKey"`
	UserID           string     `json:"userId"`
	Permission       Permission `json:"permission"`
	AssignedBy       string     `json:"assignedBy"`
	AssignedAt       time.Time  `json:"assignedAt"`
}

// AssignmentSourceType - откуда пришло назначение при выдаче общего списка.
type AssignmentSourceType string

const (
	ProposalAssignment       AssignmentSourceType = "PROPOSAL"
	UploadedTenderAssignment AssignmentSourceType = "UPLOADED_TENDER"
)

// Assignment представляет одно назначение в объединенном списке пользователя.
type Assignment struct {
	ID         string               `json:"id"`
	Source     AssignmentSourceType `json:"source"`
	TargetID   string               `json:"targetId"`
	SectionRef string               `json:"sectionRef"`
	Permission Permission           `json:"permission"`
	AssignedBy string               `json:"assignedBy"`
	AssignedAt time.Time            `json:"assignedAt"`
}

// AssignmentSummary представляет сводку по назначениям пользователя.
type AssignmentSummary struct {
	Total      int `json:"total"`
	CanEdit    int `json:"canEdit"`
	CanComment int `json:"canComment"`
}

// AssignmentList - объединенный список назначений со сводкой.
type AssignmentList struct {
	Assignments []Assignment      `json:"assignments"`
	Summary     AssignmentSummary `json:"summary"`
}

// SectionContent - содержимое раздела вместе с производными флагами доступа.
type SectionContent struct {
	Response   *SectionResponse `json:"response"`
	CanEdit    bool             `json:"canEdit"`
	CanComment bool             `json:"canComment"`
}

// CommentAnchor представляет привязку комментария к выделенному фрагменту текста.
type CommentAnchor struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	QuotedText  string `json:"quotedText"`
}

// Comment представляет комментарий к разделу предложения с поддержкой веток.
type Comment struct {
	ID         string         `json:"id"`
	ProposalID string         `json:"proposalId"`
	SectionID  string         `json:"sectionId"`
	UserID     string         `json:"userId"`
	ParentID   *string        `json:"parentId,omitempty"`
	Text       string         `json:"text"`
	Anchor     *CommentAnchor `json:"anchor,omitempty"`
	IsResolved bool           `json:"isResolved"`
	ResolvedBy *string        `json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time     `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// CommentRequest представляет структуру запроса для создания комментария.
type CommentRequest struct {
	Text     string         `json:"text"`
	ParentID *string        `json:"parentId,omitempty"`
	Anchor   *CommentAnchor `json:"anchor,omitempty"`
}
