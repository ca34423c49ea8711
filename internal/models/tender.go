package models

import "time"

type TenderStatus string // Статус тендера

const (
	DraftTender     TenderStatus = "DRAFT"     // Тендер в черновике, разделы можно менять
	PublishedTender TenderStatus = "PUBLISHED" // Тендер опубликован, разделы заморожены
)

// ValidTenderStatus проверяет, что статус тендера допустим.
func ValidTenderStatus(s TenderStatus) bool {
	switch s {
	case DraftTender, PublishedTender:
		return true
	default:
		return false
	}
}

// Tender представляет модель тендера.
type Tender struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Status         TenderStatus `json:"status"`
	Deadline       time.Time    `json:"deadline"`
	Value          float64      `json:"value"`
	OrganizationID string       `json:"organizationId"`
	CreatedBy      string       `json:"createdBy"`
	CreatedAt      time.Time    `json:"createdAt"`
	PublishedAt    *time.Time   `json:"publishedAt,omitempty"`
}

// TenderRequest представляет структуру запроса для создания тендера.
type TenderRequest struct {
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
	Value    float64   `json:"value"`
}

// Section представляет раздел тендера.
type Section struct {
	ID          string    `json:"id"`
	TenderID    string    `json:"tenderId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"orderIndex"`
	IsMandatory bool      `json:"isMandatory"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SectionRequest представляет структуру запроса для создания или изменения раздела.
type SectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"orderIndex,omitempty"`
	IsMandatory bool   `json:"isMandatory"`
}

// UploadedTender представляет загруженный извне тендерный документ,
// разделы которого адресуются строковым ключом, а не строкой таблицы.
type UploadedTender struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	OrganizationID string    `json:"organizationId"`
	UploadedBy     string    `json:"uploadedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}
