package models

import "time"

// Equipment is a singleton per character: a fixed set of named slots, each a
// free-text string. Empty string means the slot is unequipped.
type Equipment struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CharacterID uint `gorm:"uniqueIndex;not null" json:"character_id"`

	Head    string `gorm:"size:120" json:"head"`
	Armor   string `gorm:"size:120" json:"armor"`
	Back    string `gorm:"size:120" json:"back"`
	Hands   string `gorm:"size:120" json:"hands"`
	Legs    string `gorm:"size:120" json:"legs"`
	Feet    string `gorm:"size:120" json:"feet"`
	Weapon1 string `gorm:"size:120" json:"weapon1"`
	Weapon2 string `gorm:"size:120" json:"weapon2"`
	Belt    string `gorm:"size:120" json:"belt"`
	Ring1   string `gorm:"size:120" json:"ring1"`
	Ring2   string `gorm:"size:120" json:"ring2"`
	Ring3   string `gorm:"size:120" json:"ring3"`
	Ring4   string `gorm:"size:120" json:"ring4"`
	Jewelry string `gorm:"size:120" json:"jewelry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentUpdate is a partial slot update; nil leaves a slot unchanged and
// an explicit empty string unequips it.
type EquipmentUpdate struct {
	Head    *string `json:"head"`
	Armor   *string `json:"armor"`
	Back    *string `json:"back"`
	Hands   *string `json:"hands"`
	Legs    *string `json:"legs"`
	Feet    *string `json:"feet"`
	Weapon1 *string `json:"weapon1"`
	Weapon2 *string `json:"weapon2"`
	Belt    *string `json:"belt"`
	Ring1   *string `json:"ring1"`
	Ring2   *string `json:"ring2"`
	Ring3   *string `json:"ring3"`
	Ring4   *string `json:"ring4"`
	Jewelry *string `json:"jewelry"`
}
