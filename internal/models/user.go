package models

import "time"

// User represents one Telegram identity. Users are created lazily on the
// first authenticated request and never deleted in normal operation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TgID      int64     `gorm:"uniqueIndex;not null" json:"tg_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Characters []Character     `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE" json:"-"`
	Templates  []SheetTemplate `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE" json:"-"`
}
