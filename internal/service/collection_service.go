package service

import (
	"errors"

	"dnd-webapp-demo/backend/internal/models"

	"gorm.io/gorm"
)

// CollectionService manages the child collections of a character: items,
// spells, abilities, states and summons. Callers are responsible for the
// character existence/ownership check; deletes report (false, nil) when the
// record is already gone so callers decide whether that is an error.
type CollectionService struct {
	db *gorm.DB
}

// NewCollectionService creates a new collection service
func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// AddItem adds an inventory item to a character.
func (s *CollectionService) AddItem(characterID uint, req *models.CreateItemRequest) (*models.Item, error) {
	qty := req.Qty
	if qty <= 0 {
		qty = 1
	}
	item := models.Item{
		CharacterID: characterID,
		Name:        req.Name,
		Description: req.Description,
		Stats:       req.Stats,
		Qty:         qty,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns a character's inventory.
func (s *CollectionService) ListItems(characterID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Where("character_id = ?", characterID).Order("id").Find(&items).Error
	if items == nil {
		items = []models.Item{}
	}
	return items, err
}

// DeleteItem removes an item by id, scoped to its character.
func (s *CollectionService) DeleteItem(characterID, itemID uint) (bool, error) {
	return deleteChild[models.Item](s.db, characterID, itemID)
}

// AddSpell adds a spell to a character.
func (s *CollectionService) AddSpell(characterID uint, req *models.CreateSpellRequest) (*models.Spell, error) {
	spell := models.Spell{
		CharacterID: characterID,
		Name:        req.Name,
		Description: req.Description,
		Range:       req.Range,
		Duration:    req.Duration,
		Cost:        req.Cost,
		Level:       req.Level,
	}
	if err := s.db.Create(&spell).Error; err != nil {
		return nil, err
	}
	return &spell, nil
}

// ListSpells returns a character's spells.
func (s *CollectionService) ListSpells(characterID uint) ([]models.Spell, error) {
	var spells []models.Spell
	err := s.db.Where("character_id = ?", characterID).Order("id").Find(&spells).Error
	if spells == nil {
		spells = []models.Spell{}
	}
	return spells, err
}

// DeleteSpell removes a spell by id, scoped to its character.
func (s *CollectionService) DeleteSpell(characterID, spellID uint) (bool, error) {
	return deleteChild[models.Spell](s.db, characterID, spellID)
}

// AddAbility adds an ability to a character.
func (s *CollectionService) AddAbility(characterID uint, req *models.CreateSpellRequest) (*models.Ability, error) {
	ability := models.Ability{
		CharacterID: characterID,
		Name:        req.Name,
		Description: req.Description,
		Range:       req.Range,
		Duration:    req.Duration,
		Cost:        req.Cost,
		Level:       req.Level,
	}
	if err := s.db.Create(&ability).Error; err != nil {
		return nil, err
	}
	return &ability, nil
}

// ListAbilities returns a character's abilities.
func (s *CollectionService) ListAbilities(characterID uint) ([]models.Ability, error) {
	var abilities []models.Ability
	err := s.db.Where("character_id = ?", characterID).Order("id").Find(&abilities).Error
	if abilities == nil {
		abilities = []models.Ability{}
	}
	return abilities, err
}

// DeleteAbility removes an ability by id, scoped to its character.
func (s *CollectionService) DeleteAbility(characterID, abilityID uint) (bool, error) {
	return deleteChild[models.Ability](s.db, characterID, abilityID)
}

// AddState adds a status effect to a character.
func (s *CollectionService) AddState(characterID uint, req *models.CreateStateRequest) (*models.State, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	state := models.State{
		CharacterID: characterID,
		Name:        req.Name,
		Description: req.Description,
		HPCost:      req.HPCost,
		Duration:    req.Duration,
		IsActive:    active,
	}
	if err := s.db.Create(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// ListStates returns a character's status effects.
func (s *CollectionService) ListStates(characterID uint) ([]models.State, error) {
	var states []models.State
	err := s.db.Where("character_id = ?", characterID).Order("id").Find(&states).Error
	if states == nil {
		states = []models.State{}
	}
	return states, err
}

// DeleteState removes a status effect by id, scoped to its character.
func (s *CollectionService) DeleteState(characterID, stateID uint) (bool, error) {
	return deleteChild[models.State](s.db, characterID, stateID)
}

// AddSummon adds a summoned companion to a character.
func (s *CollectionService) AddSummon(characterID uint, req *models.CreateSummonRequest) (*models.Summon, error) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	summon := models.Summon{
		CharacterID:      characterID,
		Name:             req.Name,
		Description:      req.Description,
		Duration:         req.Duration,
		HPRatio:          defaultRatio(req.HPRatio, "1/3"),
		AttackRatio:      defaultRatio(req.AttackRatio, "1/2"),
		DefenseRatio:     defaultRatio(req.DefenseRatio, "1/4"),
		ManaRatio:        defaultRatio(req.ManaRatio, "0"),
		EnergyRatio:      defaultRatio(req.EnergyRatio, "0"),
		InitiativeRatio:  defaultRatio(req.InitiativeRatio, "0"),
		LuckRatio:        defaultRatio(req.LuckRatio, "0"),
		StepsRatio:       defaultRatio(req.StepsRatio, "0"),
		AttackRangeRatio: defaultRatio(req.AttackRangeRatio, "0"),
		Count:            count,
	}
	if err := s.db.Create(&summon).Error; err != nil {
		return nil, err
	}
	return &summon, nil
}

// ListSummons returns a character's summons.
func (s *CollectionService) ListSummons(characterID uint) ([]models.Summon, error) {
	var summons []models.Summon
	err := s.db.Where("character_id = ?", characterID).Order("id").Find(&summons).Error
	if summons == nil {
		summons = []models.Summon{}
	}
	return summons, err
}

// DeleteSummon removes a summon by id, scoped to its character.
func (s *CollectionService) DeleteSummon(characterID, summonID uint) (bool, error) {
	return deleteChild[models.Summon](s.db, characterID, summonID)
}

func deleteChild[T any](db *gorm.DB, characterID, id uint) (bool, error) {
	var record T
	if err := db.Where("character_id = ?", characterID).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := db.Delete(&record).Error; err != nil {
		return false, err
	}
	return true, nil
}

func defaultRatio(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
