package service

import (
	"errors"

	"dnd-webapp-demo/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrUserNotFound      = errors.New("user not found")
)

// CharacterService owns the character entity and its mutation rules.
type CharacterService struct {
	db *gorm.DB
}

// NewCharacterService creates a new character service
func NewCharacterService(db *gorm.DB) *CharacterService {
	return &CharacterService{db: db}
}

// Create produces a new character with the starting resource pools.
func (s *CharacterService) Create(ownerID uint, name string) (*models.Character, error) {
	ch := models.Character{
		OwnerUserID: ownerID,
		Name:        name,
		Level:       1,

		HP: 10, HPMax: 10, HPPerLevel: 0,
		Mana: 5, ManaMax: 5, ManaPerLevel: 0,
		Energy: 3, EnergyMax: 3, EnergyPerLevel: 0,

		CustomValues: "{}",
	}

	if err := s.db.Create(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListByOwner returns all characters owned by the given user.
func (s *CharacterService) ListByOwner(ownerID uint) ([]models.Character, error) {
	var chars []models.Character
	err := s.db.Where("owner_user_id = ?", ownerID).Order("id").Find(&chars).Error
	if chars == nil {
		chars = []models.Character{}
	}
	return chars, err
}

// Get fetches a character visible to the acting user. Game masters see every
// character; everyone else only their own. A character that exists but is
// not visible reports ErrCharacterNotFound, so callers cannot probe for
// other users' ids.
func (s *CharacterService) Get(characterID, userID uint, isDM bool) (*models.Character, error) {
	return getCharacter(s.db, characterID, userID, isDM)
}

// GetByID fetches a character regardless of ownership. Used by collection
// handlers, which apply their own owner-or-DM rule on the result.
func (s *CharacterService) GetByID(characterID uint) (*models.Character, error) {
	var ch models.Character
	if err := s.db.First(&ch, characterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// Update applies a partial update under the clamp rules and persists the
// result atomically. Fields left nil are untouched. Ownership is part of the
// lookup, never of the written fields.
func (s *CharacterService) Update(characterID, userID uint, isDM bool, upd *models.CharacterUpdate) (*models.Character, error) {
	var ch *models.Character

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		ch, err = getCharacter(tx, characterID, userID, isDM)
		if err != nil {
			return err
		}

		applyCharacterUpdate(ch, upd)
		return tx.Save(ch).Error
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// SetCustomValues overwrites the given keys in the character's custom bag.
func (s *CharacterService) SetCustomValues(characterID, userID uint, isDM bool, values models.JSONMap) (*models.Character, error) {
	var ch *models.Character

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		ch, err = getCharacter(tx, characterID, userID, isDM)
		if err != nil {
			return err
		}

		bag := models.DecodeJSONMap(ch.CustomValues)
		for key, value := range values {
			bag[key] = value
		}
		ch.CustomValues = bag.Encode()
		return tx.Save(ch).Error
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func getCharacter(tx *gorm.DB, characterID, userID uint, isDM bool) (*models.Character, error) {
	query := tx.Where("id = ?", characterID)
	if !isDM {
		query = query.Where("owner_user_id = ?", userID)
	}

	var ch models.Character
	if err := query.First(&ch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// applyCharacterUpdate mutates ch in place following a fixed order of rules:
//  1. free-text fields copied verbatim
//  2. xp and money clamped to >= 0
//  3. level clamped to >= 1
//  4. trait and combat ints copied verbatim
//  5. resource maximums clamped to >= 0
//  6. per-level deltas copied verbatim
//  7. current resources clamped to [0, max] when max > 0
//  8. every current resource re-checked against its (possibly new) max
//
// Step 8 runs unconditionally so that lowering a max alone still restores
// the pool invariant.
func applyCharacterUpdate(ch *models.Character, upd *models.CharacterUpdate) {
	setString(&ch.Name, upd.Name)
	setString(&ch.Race, upd.Race)
	setString(&ch.Gender, upd.Gender)
	setString(&ch.Klass, upd.Klass)
	setString(&ch.LevelUpRules, upd.LevelUpRules)

	if upd.XP != nil {
		ch.XP = maxInt(0, *upd.XP)
	}
	if upd.Gold != nil {
		ch.Gold = maxInt(0, *upd.Gold)
	}
	if upd.Silver != nil {
		ch.Silver = maxInt(0, *upd.Silver)
	}
	if upd.Copper != nil {
		ch.Copper = maxInt(0, *upd.Copper)
	}

	if upd.Level != nil {
		ch.Level = maxInt(1, *upd.Level)
	}

	setInt(&ch.Aggression, upd.Aggression)
	setInt(&ch.Kindness, upd.Kindness)
	setInt(&ch.Intellect, upd.Intellect)
	setInt(&ch.Fearlessness, upd.Fearlessness)
	setInt(&ch.Confidence, upd.Confidence)
	setInt(&ch.Humor, upd.Humor)
	setInt(&ch.Emotionality, upd.Emotionality)
	setInt(&ch.Sociability, upd.Sociability)
	setInt(&ch.Responsibility, upd.Responsibility)
	setInt(&ch.Intimidation, upd.Intimidation)
	setInt(&ch.Attentiveness, upd.Attentiveness)
	setInt(&ch.Learnability, upd.Learnability)
	setInt(&ch.Luck, upd.Luck)
	setInt(&ch.Stealth, upd.Stealth)

	setInt(&ch.Initiative, upd.Initiative)
	setInt(&ch.Attack, upd.Attack)
	setInt(&ch.Counterattack, upd.Counterattack)
	setInt(&ch.Steps, upd.Steps)
	setInt(&ch.Defense, upd.Defense)
	setInt(&ch.PermArmor, upd.PermArmor)
	setInt(&ch.TempArmor, upd.TempArmor)
	setInt(&ch.ActionPoints, upd.ActionPoints)
	setInt(&ch.Dodges, upd.Dodges)

	if upd.HPMax != nil {
		ch.HPMax = maxInt(0, *upd.HPMax)
	}
	if upd.ManaMax != nil {
		ch.ManaMax = maxInt(0, *upd.ManaMax)
	}
	if upd.EnergyMax != nil {
		ch.EnergyMax = maxInt(0, *upd.EnergyMax)
	}

	setInt(&ch.HPPerLevel, upd.HPPerLevel)
	setInt(&ch.ManaPerLevel, upd.ManaPerLevel)
	setInt(&ch.EnergyPerLevel, upd.EnergyPerLevel)

	if upd.HP != nil {
		ch.HP = clampResource(*upd.HP, ch.HPMax)
	}
	if upd.Mana != nil {
		ch.Mana = clampResource(*upd.Mana, ch.ManaMax)
	}
	if upd.Energy != nil {
		ch.Energy = clampResource(*upd.Energy, ch.EnergyMax)
	}

	clampCharacterPools(ch)
}

// clampCharacterPools lowers each current resource to its max if it now
// exceeds it. Also applied to imported characters before their first write.
func clampCharacterPools(ch *models.Character) {
	if ch.HPMax > 0 && ch.HP > ch.HPMax {
		ch.HP = ch.HPMax
	}
	if ch.ManaMax > 0 && ch.Mana > ch.ManaMax {
		ch.Mana = ch.ManaMax
	}
	if ch.EnergyMax > 0 && ch.Energy > ch.EnergyMax {
		ch.Energy = ch.EnergyMax
	}
}

func clampResource(value, maxValue int) int {
	value = maxInt(0, value)
	if maxValue > 0 && value > maxValue {
		value = maxValue
	}
	return value
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
