package models

import "time"

// SheetView is the aggregate read/write view of one character: the entity,
// every child collection, equipment, the referenced template (if any) and
// the parsed custom-values bag.
type SheetView struct {
	Character    Character         `json:"character"`
	Items        []Item            `json:"items"`
	Spells       []Spell           `json:"spells"`
	Abilities    []Ability         `json:"abilities"`
	States       []State           `json:"states"`
	Summons      []Summon          `json:"summons"`
	Equipment    Equipment         `json:"equipment"`
	Template     *TemplateResponse `json:"template,omitempty"`
	CustomValues JSONMap           `json:"custom_values"`
}

// TemplateDocument is a template embedded in an exported sheet.
type TemplateDocument struct {
	Name   string  `json:"name"`
	Config JSONMap `json:"config"`
}

// SheetDocument is the transport form of a full sheet for export/import.
// Record ids inside it are informational; import always creates fresh rows.
type SheetDocument struct {
	ExportID   string    `json:"export_id,omitempty"`
	ExportedAt time.Time `json:"exported_at,omitempty"`

	// NewName lets an import rename the character up front.
	NewName *string `json:"new_name,omitempty"`

	Template     *TemplateDocument `json:"template,omitempty"`
	Character    Character         `json:"character"`
	Items        []Item            `json:"items"`
	Spells       []Spell           `json:"spells"`
	Abilities    []Ability         `json:"abilities"`
	States       []State           `json:"states"`
	Summons      []Summon          `json:"summons"`
	Equipment    *Equipment        `json:"equipment,omitempty"`
	CustomValues JSONMap           `json:"custom_values,omitempty"`
}
