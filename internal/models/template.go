package models

import "time"

// SheetTemplate is a user-owned, reusable sheet configuration. The config is
// opaque to the storage layer; only the template engine interprets it.
// Characters hold a weak reference to a template via TemplateID.
type SheetTemplate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerUserID uint      `gorm:"index;not null" json:"owner_user_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	ConfigJSON  string    `gorm:"type:text;default:'{}'" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTemplateRequest is the body of POST /templates.
type CreateTemplateRequest struct {
	Name   string  `json:"name" binding:"required"`
	Config JSONMap `json:"config"`
}

// TemplateResponse is a template with its parsed configuration.
type TemplateResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Config JSONMap `json:"config"`
}

// ApplyTemplateRequest is the body of POST /characters/:id/apply-template.
type ApplyTemplateRequest struct {
	TemplateID uint `json:"template_id" binding:"required"`
}

// CustomValuesUpdate is the body of PATCH /characters/:id/custom.
type CustomValuesUpdate struct {
	Values JSONMap `json:"values" binding:"required"`
}
