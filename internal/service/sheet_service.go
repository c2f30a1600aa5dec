package service

import (
	"errors"
	"time"

	"dnd-webapp-demo/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SheetService composes the aggregate sheet view and the export/import
// codec on top of the other managers.
type SheetService struct {
	db         *gorm.DB
	characters *CharacterService
	items      *CollectionService
	equipment  *EquipmentService
	templates  *TemplateService
}

// NewSheetService creates a new sheet service
func NewSheetService(
	db *gorm.DB,
	characters *CharacterService,
	items *CollectionService,
	equipment *EquipmentService,
	templates *TemplateService,
) *SheetService {
	return &SheetService{
		db:         db,
		characters: characters,
		items:      items,
		equipment:  equipment,
		templates:  templates,
	}
}

// GetSheet returns one consistent view of a character and everything hanging
// off it. If the character is missing no sub-fetches happen.
func (s *SheetService) GetSheet(characterID, userID uint, isDM bool) (*models.SheetView, error) {
	ch, err := s.characters.Get(characterID, userID, isDM)
	if err != nil {
		return nil, err
	}

	view := &models.SheetView{
		Character:    *ch,
		CustomValues: models.DecodeJSONMap(ch.CustomValues),
	}

	if view.Items, err = s.items.ListItems(ch.ID); err != nil {
		return nil, err
	}
	if view.Spells, err = s.items.ListSpells(ch.ID); err != nil {
		return nil, err
	}
	if view.Abilities, err = s.items.ListAbilities(ch.ID); err != nil {
		return nil, err
	}
	if view.States, err = s.items.ListStates(ch.ID); err != nil {
		return nil, err
	}
	if view.Summons, err = s.items.ListSummons(ch.ID); err != nil {
		return nil, err
	}

	eq, err := s.equipment.GetOrCreate(ch.ID)
	if err != nil {
		return nil, err
	}
	view.Equipment = *eq

	if ch.TemplateID != nil {
		tpl, err := s.templates.GetByID(*ch.TemplateID)
		switch {
		case err == nil:
			view.Template = &models.TemplateResponse{
				ID:     tpl.ID,
				Name:   tpl.Name,
				Config: s.templates.Config(tpl),
			}
		case errors.Is(err, ErrTemplateNotFound):
			// weak reference: a vanished template does not break the sheet
		default:
			return nil, err
		}
	}

	return view, nil
}

// Export flattens the aggregate view into a transport document.
func (s *SheetService) Export(characterID, userID uint, isDM bool) (*models.SheetDocument, error) {
	view, err := s.GetSheet(characterID, userID, isDM)
	if err != nil {
		return nil, err
	}

	doc := &models.SheetDocument{
		ExportID:     uuid.New().String(),
		ExportedAt:   time.Now().UTC(),
		Character:    view.Character,
		Items:        view.Items,
		Spells:       view.Spells,
		Abilities:    view.Abilities,
		States:       view.States,
		Summons:      view.Summons,
		Equipment:    &view.Equipment,
		CustomValues: view.CustomValues,
	}

	if view.Template != nil {
		doc.Template = &models.TemplateDocument{
			Name:   view.Template.Name,
			Config: view.Template.Config,
		}
	}

	return doc, nil
}

// Import creates a brand-new character from a sheet document. It never
// overwrites existing rows; importing the same document twice yields two
// characters. Children without a name are skipped. The whole import commits
// atomically.
func (s *SheetService) Import(ownerID uint, doc *models.SheetDocument) (*models.Character, error) {
	var created *models.Character

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ch := doc.Character
		ch.ID = 0
		ch.OwnerUserID = ownerID
		ch.TemplateID = nil
		ch.CreatedAt = time.Time{}
		ch.UpdatedAt = time.Time{}
		ch.Items, ch.Spells, ch.Abilities, ch.States, ch.Summons = nil, nil, nil, nil, nil
		ch.Equipment = nil

		if doc.NewName != nil && *doc.NewName != "" {
			ch.Name = *doc.NewName
		}
		if ch.Name == "" {
			ch.Name = "Imported character"
		}

		// Imported numbers pass through the same floors as updates.
		if ch.Level < 1 {
			ch.Level = 1
		}
		ch.XP = maxInt(0, ch.XP)
		ch.Gold = maxInt(0, ch.Gold)
		ch.Silver = maxInt(0, ch.Silver)
		ch.Copper = maxInt(0, ch.Copper)
		ch.HPMax = maxInt(0, ch.HPMax)
		ch.ManaMax = maxInt(0, ch.ManaMax)
		ch.EnergyMax = maxInt(0, ch.EnergyMax)
		ch.HP = clampResource(ch.HP, ch.HPMax)
		ch.Mana = clampResource(ch.Mana, ch.ManaMax)
		ch.Energy = clampResource(ch.Energy, ch.EnergyMax)
		clampCharacterPools(&ch)

		ch.CustomValues = doc.CustomValues.Encode()

		if doc.Template != nil && doc.Template.Name != "" {
			tpl := models.SheetTemplate{
				OwnerUserID: ownerID,
				Name:        doc.Template.Name,
				ConfigJSON:  doc.Template.Config.Encode(),
			}
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
			ch.TemplateID = &tpl.ID
		}

		if err := tx.Create(&ch).Error; err != nil {
			return err
		}

		for _, item := range doc.Items {
			if item.Name == "" {
				continue
			}
			item.ID = 0
			item.CharacterID = ch.ID
			if item.Qty <= 0 {
				item.Qty = 1
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		for _, spell := range doc.Spells {
			if spell.Name == "" {
				continue
			}
			spell.ID = 0
			spell.CharacterID = ch.ID
			if err := tx.Create(&spell).Error; err != nil {
				return err
			}
		}
		for _, ability := range doc.Abilities {
			if ability.Name == "" {
				continue
			}
			ability.ID = 0
			ability.CharacterID = ch.ID
			if err := tx.Create(&ability).Error; err != nil {
				return err
			}
		}
		for _, state := range doc.States {
			if state.Name == "" {
				continue
			}
			state.ID = 0
			state.CharacterID = ch.ID
			if err := tx.Create(&state).Error; err != nil {
				return err
			}
		}
		for _, summon := range doc.Summons {
			if summon.Name == "" {
				continue
			}
			summon.ID = 0
			summon.CharacterID = ch.ID
			if summon.Count <= 0 {
				summon.Count = 1
			}
			if err := tx.Create(&summon).Error; err != nil {
				return err
			}
		}

		if doc.Equipment != nil {
			eq := *doc.Equipment
			eq.ID = 0
			eq.CharacterID = ch.ID
			if err := tx.Create(&eq).Error; err != nil {
				return err
			}
		}

		created = &ch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
