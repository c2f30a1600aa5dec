package service

import (
	"errors"
	"fmt"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/pkg/cache"

	"gorm.io/gorm"
)

// TemplateService stores reusable sheet configurations and seeds their
// default custom-field values onto characters. Parsed configs are cached
// because the config blob is read on every sheet fetch but rarely changes.
type TemplateService struct {
	db         *gorm.DB
	characters *CharacterService
	configs    *cache.Cache
}

// NewTemplateService creates a new template service
func NewTemplateService(db *gorm.DB, characters *CharacterService, configs *cache.Cache) *TemplateService {
	return &TemplateService{db: db, characters: characters, configs: configs}
}

// Create stores a template with an opaque configuration document.
func (s *TemplateService) Create(ownerID uint, name string, config models.JSONMap) (*models.SheetTemplate, error) {
	tpl := models.SheetTemplate{
		OwnerUserID: ownerID,
		Name:        name,
		ConfigJSON:  config.Encode(),
	}
	if err := s.db.Create(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ListByOwner returns the templates owned by a user.
func (s *TemplateService) ListByOwner(ownerID uint) ([]models.SheetTemplate, error) {
	var templates []models.SheetTemplate
	err := s.db.Where("owner_user_id = ?", ownerID).Order("id").Find(&templates).Error
	if templates == nil {
		templates = []models.SheetTemplate{}
	}
	return templates, err
}

// GetForOwner fetches a template scoped to its owner.
func (s *TemplateService) GetForOwner(templateID, ownerID uint) (*models.SheetTemplate, error) {
	var tpl models.SheetTemplate
	err := s.db.Where("id = ? AND owner_user_id = ?", templateID, ownerID).First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// GetByID fetches a template regardless of owner. Sheet aggregation uses it
// to resolve a character's weak template reference.
func (s *TemplateService) GetByID(templateID uint) (*models.SheetTemplate, error) {
	var tpl models.SheetTemplate
	if err := s.db.First(&tpl, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// Config returns the parsed configuration of a template, consulting the
// cache first. A corrupt blob parses as an empty config.
func (s *TemplateService) Config(tpl *models.SheetTemplate) models.JSONMap {
	key := configCacheKey(tpl.ID)
	if cached, ok := s.configs.Get(key); ok {
		if config, ok := cached.(models.JSONMap); ok {
			return config
		}
	}

	config := models.DecodeJSONMap(tpl.ConfigJSON)
	s.configs.Set(key, config)
	return config
}

// Delete removes a template and nulls the reference on every character that
// points at it, in one transaction, so no dangling template_id survives.
func (s *TemplateService) Delete(templateID, ownerID uint) (bool, error) {
	var deleted bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tpl models.SheetTemplate
		err := tx.Where("id = ? AND owner_user_id = ?", templateID, ownerID).First(&tpl).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Model(&models.Character{}).
			Where("template_id = ?", tpl.ID).
			Update("template_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&tpl).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.configs.Delete(configCacheKey(templateID))
	}
	return deleted, nil
}

// Apply merges a template's default values into a character's custom bag
// with set-if-absent semantics and records the template reference. Applying
// the same template twice leaves the bag unchanged.
func (s *TemplateService) Apply(characterID, userID uint, isDM bool, templateID uint) (*models.Character, error) {
	var ch *models.Character

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		ch, err = getCharacter(tx, characterID, userID, isDM)
		if err != nil {
			return err
		}

		var tpl models.SheetTemplate
		err = tx.Where("id = ? AND owner_user_id = ?", templateID, userID).First(&tpl).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}

		defaults := ComputeDefaults(models.DecodeJSONMap(tpl.ConfigJSON))
		bag := models.DecodeJSONMap(ch.CustomValues)
		for key, value := range defaults {
			if _, exists := bag[key]; !exists {
				bag[key] = value
			}
		}

		ch.CustomValues = bag.Encode()
		ch.TemplateID = &tpl.ID
		return tx.Save(ch).Error
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// CreateCharacter creates a fresh character and applies the template to it.
func (s *TemplateService) CreateCharacter(ownerID, templateID uint, name string) (*models.Character, error) {
	tpl, err := s.GetForOwner(templateID, ownerID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = tpl.Name
	}
	ch, err := s.characters.Create(ownerID, name)
	if err != nil {
		return nil, err
	}

	return s.Apply(ch.ID, ownerID, false, tpl.ID)
}

// ComputeDefaults derives the default custom-values mapping from a template
// configuration. Field descriptors live under custom_sections[*].fields[*];
// entries without a key are skipped. A descriptor's explicit default wins,
// otherwise textual types default to "" and everything else to 0.
func ComputeDefaults(config models.JSONMap) models.JSONMap {
	defaults := models.JSONMap{}

	sections, ok := config["custom_sections"].([]any)
	if !ok {
		return defaults
	}

	for _, rawSection := range sections {
		section, ok := rawSection.(map[string]any)
		if !ok {
			continue
		}
		fields, ok := section["fields"].([]any)
		if !ok {
			continue
		}

		for _, rawField := range fields {
			field, ok := rawField.(map[string]any)
			if !ok {
				continue
			}
			key, _ := field["key"].(string)
			if key == "" {
				continue
			}

			if def, exists := field["default"]; exists {
				defaults[key] = def
				continue
			}

			if isTextualType(field["type"]) {
				defaults[key] = ""
			} else {
				defaults[key] = 0
			}
		}
	}

	return defaults
}

func isTextualType(typeTag any) bool {
	switch typeTag {
	case "text", "string", "textarea":
		return true
	}
	return false
}

func configCacheKey(templateID uint) string {
	return fmt.Sprintf("template-config:%d", templateID)
}
