package models

type Role string // Роль учетной записи, приходит из внешнего слоя аутентификации

const (
	AuthorityRole Role = "AUTHORITY" // Заказчик
	BidderRole    Role = "BIDDER"    // Участник
	AssisterRole  Role = "ASSISTER"  // Привлеченный соисполнитель
)

// UserIdentity представляет уже аутентифицированного пользователя.
// Ядро аутентификацию не выполняет, только проверки владения и назначений.
type UserIdentity struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           Role   `json:"role"`
}
