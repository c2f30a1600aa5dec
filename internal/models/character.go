package models

import "time"

// Character is the central entity of the sheet store. Ownership is fixed at
// creation; OwnerUserID is never writable through the update path.
type Character struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	OwnerUserID uint  `gorm:"index;not null" json:"owner_user_id"`
	TemplateID  *uint `gorm:"index" json:"template_id,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Race         string `gorm:"size:60" json:"race"`
	Gender       string `gorm:"size:40" json:"gender"`
	Klass        string `gorm:"size:60" json:"klass"`
	Level        int    `gorm:"default:1" json:"level"`
	XP           int    `json:"xp"`
	LevelUpRules string `gorm:"type:text" json:"level_up_rules"`

	// Money
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Copper int `json:"copper"`

	// Personality traits
	Aggression     int `json:"aggression"`
	Kindness       int `json:"kindness"`
	Intellect      int `json:"intellect"`
	Fearlessness   int `json:"fearlessness"`
	Confidence     int `json:"confidence"`
	Humor          int `json:"humor"`
	Emotionality   int `json:"emotionality"`
	Sociability    int `json:"sociability"`
	Responsibility int `json:"responsibility"`
	Intimidation   int `json:"intimidation"`
	Attentiveness  int `json:"attentiveness"`
	Learnability   int `json:"learnability"`
	Luck           int `json:"luck"`
	Stealth        int `json:"stealth"`

	// Combat stats
	Initiative    int `json:"initiative"`
	Attack        int `json:"attack"`
	Counterattack int `json:"counterattack"`
	Steps         int `json:"steps"`
	Defense       int `json:"defense"`
	PermArmor     int `json:"perm_armor"`
	TempArmor     int `json:"temp_armor"`
	ActionPoints  int `json:"action_points"`
	Dodges        int `json:"dodges"`

	// Resource pools: current value, maximum, per-level-up delta.
	// Invariant: current >= 0, and current <= max whenever max > 0.
	HP             int `json:"hp"`
	Mana           int `json:"mana"`
	Energy         int `json:"energy"`
	HPMax          int `json:"hp_max"`
	ManaMax        int `json:"mana_max"`
	EnergyMax      int `json:"energy_max"`
	HPPerLevel     int `json:"hp_per_level"`
	ManaPerLevel   int `json:"mana_per_level"`
	EnergyPerLevel int `json:"energy_per_level"`

	// Free-form key/value bag, serialized JSON. Parsed only at the
	// application boundary; a corrupt blob decodes as an empty bag.
	CustomValues string `gorm:"type:text;default:'{}'" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items     []Item     `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Spells    []Spell    `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Abilities []Ability  `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	States    []State    `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Summons   []Summon   `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Equipment *Equipment `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
}

// CharacterSummary is the shape returned by the character list endpoint.
type CharacterSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Race  string `json:"race"`
	Klass string `json:"klass"`
	Level int    `json:"level"`
}

// Summary converts a character to its list representation.
func (c *Character) Summary() CharacterSummary {
	return CharacterSummary{
		ID:    c.ID,
		Name:  c.Name,
		Race:  c.Race,
		Klass: c.Klass,
		Level: c.Level,
	}
}

// CreateCharacterRequest is the body of POST /characters.
type CreateCharacterRequest struct {
	Name string `json:"name" binding:"required"`
}

// CharacterUpdate carries a partial update. Every mutable attribute has one
// optional slot; nil means "leave unchanged". The clamp rules live in the
// character service, which applies them in a fixed order.
type CharacterUpdate struct {
	Name         *string `json:"name"`
	Race         *string `json:"race"`
	Gender       *string `json:"gender"`
	Klass        *string `json:"klass"`
	LevelUpRules *string `json:"level_up_rules"`

	Level *int `json:"level"`
	XP    *int `json:"xp"`

	Gold   *int `json:"gold"`
	Silver *int `json:"silver"`
	Copper *int `json:"copper"`

	Aggression     *int `json:"aggression"`
	Kindness       *int `json:"kindness"`
	Intellect      *int `json:"intellect"`
	Fearlessness   *int `json:"fearlessness"`
	Confidence     *int `json:"confidence"`
	Humor          *int `json:"humor"`
	Emotionality   *int `json:"emotionality"`
	Sociability    *int `json:"sociability"`
	Responsibility *int `json:"responsibility"`
	Intimidation   *int `json:"intimidation"`
	Attentiveness  *int `json:"attentiveness"`
	Learnability   *int `json:"learnability"`
	Luck           *int `json:"luck"`
	Stealth        *int `json:"stealth"`

	Initiative    *int `json:"initiative"`
	Attack        *int `json:"attack"`
	Counterattack *int `json:"counterattack"`
	Steps         *int `json:"steps"`
	Defense       *int `json:"defense"`
	PermArmor     *int `json:"perm_armor"`
	TempArmor     *int `json:"temp_armor"`
	ActionPoints  *int `json:"action_points"`
	Dodges        *int `json:"dodges"`

	HP             *int `json:"hp"`
	Mana           *int `json:"mana"`
	Energy         *int `json:"energy"`
	HPMax          *int `json:"hp_max"`
	ManaMax        *int `json:"mana_max"`
	EnergyMax      *int `json:"energy_max"`
	HPPerLevel     *int `json:"hp_per_level"`
	ManaPerLevel   *int `json:"mana_per_level"`
	EnergyPerLevel *int `json:"energy_per_level"`
}
