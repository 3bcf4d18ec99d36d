package models

// Tenant is an isolated customer organisation. Every permission record is scoped to one.
type Tenant struct {
	BaseModel

	Name    string `gorm:"not null" json:"name"`
	OwnerID string `gorm:"size:128;index" json:"owner_id"`
}
