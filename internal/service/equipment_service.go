package service

import (
	"errors"

	"dnd-webapp-demo/backend/internal/models"

	"gorm.io/gorm"
)

// EquipmentService manages the per-character equipment singleton.
type EquipmentService struct {
	db *gorm.DB
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{db: db}
}

// GetOrCreate fetches a character's equipment row, creating an empty one on
// first access. A concurrent first access races on the unique index; the
// loser re-reads the winner's row.
func (s *EquipmentService) GetOrCreate(characterID uint) (*models.Equipment, error) {
	return getOrCreateEquipment(s.db, characterID)
}

// Update applies a partial slot update. An explicit empty string is a valid
// "unequip" value; nil slots are untouched.
func (s *EquipmentService) Update(characterID uint, upd *models.EquipmentUpdate) (*models.Equipment, error) {
	var eq *models.Equipment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		eq, err = getOrCreateEquipment(tx, characterID)
		if err != nil {
			return err
		}

		setString(&eq.Head, upd.Head)
		setString(&eq.Armor, upd.Armor)
		setString(&eq.Back, upd.Back)
		setString(&eq.Hands, upd.Hands)
		setString(&eq.Legs, upd.Legs)
		setString(&eq.Feet, upd.Feet)
		setString(&eq.Weapon1, upd.Weapon1)
		setString(&eq.Weapon2, upd.Weapon2)
		setString(&eq.Belt, upd.Belt)
		setString(&eq.Ring1, upd.Ring1)
		setString(&eq.Ring2, upd.Ring2)
		setString(&eq.Ring3, upd.Ring3)
		setString(&eq.Ring4, upd.Ring4)
		setString(&eq.Jewelry, upd.Jewelry)

		return tx.Save(eq).Error
	})
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func getOrCreateEquipment(tx *gorm.DB, characterID uint) (*models.Equipment, error) {
	var eq models.Equipment
	err := tx.Where("character_id = ?", characterID).First(&eq).Error
	if err == nil {
		return &eq, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eq = models.Equipment{CharacterID: characterID}
	if err := tx.Create(&eq).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Equipment
			if err := tx.Where("character_id = ?", characterID).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &eq, nil
}
