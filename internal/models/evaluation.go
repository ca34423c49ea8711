package models

import "time"

type (
	TechnicalStatus  string // Результат технической квалификации заявки
	EvaluationStatus string // Прогресс оценки (заявки или тендера целиком)
)

const (
	PendingTechnical      TechnicalStatus = "PENDING"      // Квалификация еще не проводилась
	QualifiedTechnical    TechnicalStatus = "QUALIFIED"    // Заявка прошла техническую квалификацию
	DisqualifiedTechnical TechnicalStatus = "DISQUALIFIED" // Заявка отклонена по технике

	PendingEvaluation    EvaluationStatus = "PENDING"     // Оценка не начата
	InProgressEvaluation EvaluationStatus = "IN_PROGRESS" // Оценка идет
	CompletedEvaluation  EvaluationStatus = "COMPLETED"   // Оценка завершена, L1 зафиксирован
)

// ValidTechnicalStatus проверяет, что статус квалификации допустим.
func ValidTechnicalStatus(s TechnicalStatus) bool {
	switch s {
	case PendingTechnical, QualifiedTechnical, DisqualifiedTechnical:
		return true
	default:
		return false
	}
}

// BidEvaluation представляет оценку одной заявки по тендеру.
type BidEvaluation struct {
	ID              string           `json:"id"`
	TenderID        string           `json:"tenderId"`
	ProposalID      string           `json:"proposalId"`
	BidAmount       *float64         `json:"bidAmount,omitempty"`
	TechnicalStatus TechnicalStatus  `json:"technicalStatus"`
	TechnicalScore  *float64         `json:"technicalScore,omitempty"`
	Remarks         string           `json:"remarks"`
	EvaluatedBy     *string          `json:"evaluatedBy,omitempty"`
	EvaluatedAt     *time.Time       `json:"evaluatedAt,omitempty"`
	Status          EvaluationStatus `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// BidEvaluationRequest представляет частичное обновление оценки заявки.
// Пустое поле оставляет сохраненное значение без изменений.
type BidEvaluationRequest struct {
	BidAmount       *string          `json:"bidAmount,omitempty"`
	TechnicalStatus *TechnicalStatus `json:"technicalStatus,omitempty"`
	TechnicalScore  *string          `json:"technicalScore,omitempty"`
	Remarks         *string          `json:"remarks,omitempty"`
}

// BidEvaluationUpdate - уже распарсенные поля частичного обновления оценки.
// nil означает "оставить как есть".
type BidEvaluationUpdate struct {
	BidAmount       *float64
	TechnicalStatus *TechnicalStatus
	TechnicalScore  *float64
	Remarks         *string
}

// TenderEvaluationStatus представляет агрегат оценки по тендеру.
type TenderEvaluationStatus struct {
	ID                string           `json:"id"`
	TenderID          string           `json:"tenderId"`
	EvaluationStatus  EvaluationStatus `json:"evaluationStatus"`
	TotalBidsReceived int              `json:"totalBidsReceived"`
	QualifiedBids     int              `json:"qualifiedBids"`
	DisqualifiedBids  int              `json:"disqualifiedBids"`
	L1ProposalID      *string          `json:"l1ProposalId,omitempty"`
	L1Amount          *float64         `json:"l1Amount,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	CompletedAt       *time.Time       `json:"completedAt,omitempty"`
}

// TenderEvaluationDetails - агрегат тендера вместе с ранжированным списком заявок.
type TenderEvaluationDetails struct {
	Status TenderEvaluationStatus `json:"status"`
	Bids   []BidEvaluation        `json:"bids"`
}
