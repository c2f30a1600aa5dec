package models

import "time"

// Item is an inventory entry owned by exactly one character.
type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CharacterID uint      `gorm:"index;not null" json:"character_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Stats       string    `gorm:"type:text" json:"stats"`
	Qty         int       `gorm:"default:1" json:"qty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Spell is a castable entry; cost/range/duration are free text so groups can
// write their own formulas ("mana = x*10" and the like).
type Spell struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CharacterID uint      `gorm:"index;not null" json:"character_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Range       string    `gorm:"size:80" json:"range"`
	Duration    string    `gorm:"size:80" json:"duration"`
	Cost        string    `gorm:"size:120" json:"cost"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ability shares the spell shape.
type Ability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CharacterID uint      `gorm:"index;not null" json:"character_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Range       string    `gorm:"size:80" json:"range"`
	Duration    string    `gorm:"size:80" json:"duration"`
	Cost        string    `gorm:"size:120" json:"cost"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// State is a status effect. HPCost intentionally has no sign constraint.
type State struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CharacterID uint      `gorm:"index;not null" json:"character_id"`
	Name        string    `gorm:"size:80;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	HPCost      int       `json:"hp_cost"`
	Duration    string    `gorm:"size:80" json:"duration"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summon is a companion creature whose stats are fractions of the owner's,
// expressed as free-text ratios ("1/3", "50%", "0.25") resolved client-side.
type Summon struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CharacterID uint   `gorm:"index;not null" json:"character_id"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Duration    string `gorm:"size:80" json:"duration"`

	HPRatio          string `gorm:"size:40;default:'1/3'" json:"hp_ratio"`
	AttackRatio      string `gorm:"size:40;default:'1/2'" json:"attack_ratio"`
	DefenseRatio     string `gorm:"size:40;default:'1/4'" json:"defense_ratio"`
	ManaRatio        string `gorm:"size:40;default:'0'" json:"mana_ratio"`
	EnergyRatio      string `gorm:"size:40;default:'0'" json:"energy_ratio"`
	InitiativeRatio  string `gorm:"size:40;default:'0'" json:"initiative_ratio"`
	LuckRatio        string `gorm:"size:40;default:'0'" json:"luck_ratio"`
	StepsRatio       string `gorm:"size:40;default:'0'" json:"steps_ratio"`
	AttackRangeRatio string `gorm:"size:40;default:'0'" json:"attack_range_ratio"`

	Count     int       `gorm:"default:1" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemRequest is the body of POST /characters/:id/items.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Stats       string `json:"stats"`
	Qty         int    `json:"qty"`
}

// CreateSpellRequest covers spells and abilities; they share a shape.
type CreateSpellRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
	Level       int    `json:"level"`
}

// CreateStateRequest is the body of POST /characters/:id/states.
type CreateStateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	HPCost      int    `json:"hp_cost"`
	Duration    string `json:"duration"`
	IsActive    *bool  `json:"is_active"`
}

// CreateSummonRequest is the body of POST /characters/:id/summons.
type CreateSummonRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Duration         string `json:"duration"`
	HPRatio          string `json:"hp_ratio"`
	AttackRatio      string `json:"attack_ratio"`
	DefenseRatio     string `json:"defense_ratio"`
	ManaRatio        string `json:"mana_ratio"`
	EnergyRatio      string `json:"energy_ratio"`
	InitiativeRatio  string `json:"initiative_ratio"`
	LuckRatio        string `json:"luck_ratio"`
	StepsRatio       string `json:"steps_ratio"`
	AttackRangeRatio string `json:"attack_range_ratio"`
	Count            int    `json:"count"`
}
