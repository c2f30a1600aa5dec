package service

import (
	"testing"
	"time"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSheetFixture(t *testing.T) (*gorm.DB, *SheetService) {
	t.Helper()

	db := newTestDB(t)
	chars := NewCharacterService(db)
	collections := NewCollectionService(db)
	equipment := NewEquipmentService(db)
	templates := NewTemplateService(db, chars, cache.New(time.Minute, 0, 100))
	sheets := NewSheetService(db, chars, collections, equipment, templates)
	return db, sheets
}

func TestGetSheetAggregates(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	chars := NewCharacterService(db)
	collections := NewCollectionService(db)

	ch, err := chars.Create(owner.ID, "Aria")
	require.NoError(t, err)
	_, err = collections.AddItem(ch.ID, &models.CreateItemRequest{Name: "Sword"})
	require.NoError(t, err)
	_, err = collections.AddSpell(ch.ID, &models.CreateSpellRequest{Name: "Fireball", Level: 3})
	require.NoError(t, err)
	_, err = chars.SetCustomValues(ch.ID, owner.ID, false, models.JSONMap{"honor": 7})
	require.NoError(t, err)

	view, err := sheets.GetSheet(ch.ID, owner.ID, false)
	require.NoError(t, err)

	assert.Equal(t, "Aria", view.Character.Name)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Sword", view.Items[0].Name)
	require.Len(t, view.Spells, 1)
	assert.Empty(t, view.Abilities)
	assert.Equal(t, ch.ID, view.Equipment.CharacterID)
	assert.EqualValues(t, 7, view.CustomValues["honor"])
	assert.Nil(t, view.Template)
}

func TestGetSheetToleratesVanishedTemplate(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	ch, err := NewCharacterService(db).Create(owner.ID, "Aria")
	require.NoError(t, err)

	// Point the character at a template id that no longer exists.
	missing := uint(9999)
	require.NoError(t, db.Model(ch).Update("template_id", missing).Error)

	view, err := sheets.GetSheet(ch.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Nil(t, view.Template)
}

func TestExportImportRoundTrip(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	chars := NewCharacterService(db)
	collections := NewCollectionService(db)

	ch, err := chars.Create(owner.ID, "Aria")
	require.NoError(t, err)
	_, err = chars.Update(ch.ID, owner.ID, false, &models.CharacterUpdate{
		Race:  strPtr("Elf"),
		Level: intPtr(4),
		Gold:  intPtr(120),
	})
	require.NoError(t, err)
	_, err = collections.AddItem(ch.ID, &models.CreateItemRequest{Name: "Sword", Qty: 2})
	require.NoError(t, err)
	_, err = collections.AddSummon(ch.ID, &models.CreateSummonRequest{Name: "Wolf"})
	require.NoError(t, err)

	doc, err := sheets.Export(ch.ID, owner.ID, false)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ExportID)
	assert.Equal(t, "Aria", doc.Character.Name)

	imported, err := sheets.Import(owner.ID, doc)
	require.NoError(t, err)

	assert.NotEqual(t, ch.ID, imported.ID, "import creates, never overwrites")
	assert.Equal(t, "Aria", imported.Name)
	assert.Equal(t, "Elf", imported.Race)
	assert.Equal(t, 4, imported.Level)
	assert.Equal(t, 120, imported.Gold)

	items, err := collections.ListItems(imported.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)

	summons, err := collections.ListSummons(imported.ID)
	require.NoError(t, err)
	assert.Len(t, summons, 1)

	// The source character keeps its own children.
	items, err = collections.ListItems(ch.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImportAppliesFloorsAndRename(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	doc := &models.SheetDocument{
		NewName: strPtr("Aria Reborn"),
		Character: models.Character{
			Name:  "Aria",
			Level: 0,
			XP:    -10,
			HP:    50,
			HPMax: 20,
		},
		Items: []models.Item{
			{Name: "Sword", Qty: 0},
			{Name: ""}, // nameless entries are dropped
		},
		CustomValues: models.JSONMap{"honor": 7},
	}

	imported, err := sheets.Import(owner.ID, doc)
	require.NoError(t, err)

	assert.Equal(t, "Aria Reborn", imported.Name)
	assert.Equal(t, 1, imported.Level)
	assert.Equal(t, 0, imported.XP)
	assert.Equal(t, 20, imported.HP, "imported pools obey the max")

	collections := NewCollectionService(db)
	items, err := collections.ListItems(imported.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)

	bag := models.DecodeJSONMap(imported.CustomValues)
	assert.EqualValues(t, 7, bag["honor"])
}

func TestImportRecreatesEmbeddedTemplate(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	doc := &models.SheetDocument{
		Character: models.Character{Name: "Aria"},
		Template: &models.TemplateDocument{
			Name:   "Campaign sheet",
			Config: models.JSONMap{"custom_sections": []any{}},
		},
	}

	imported, err := sheets.Import(owner.ID, doc)
	require.NoError(t, err)
	require.NotNil(t, imported.TemplateID)

	var tpl models.SheetTemplate
	require.NoError(t, db.First(&tpl, *imported.TemplateID).Error)
	assert.Equal(t, "Campaign sheet", tpl.Name)
	assert.Equal(t, owner.ID, tpl.OwnerUserID)
}

func TestImportTwiceYieldsTwoCharacters(t *testing.T) {
	db, sheets := newSheetFixture(t)
	owner := createTestUser(t, db, 42)

	doc := &models.SheetDocument{Character: models.Character{Name: "Aria"}}

	first, err := sheets.Import(owner.ID, doc)
	require.NoError(t, err)
	second, err := sheets.Import(owner.ID, doc)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Character{}).Where("owner_user_id = ?", owner.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
