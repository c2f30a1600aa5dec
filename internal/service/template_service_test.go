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

func newTemplateFixture(t *testing.T) (*gorm.DB, *CharacterService, *TemplateService) {
	t.Helper()

	db := newTestDB(t)
	chars := NewCharacterService(db)
	templates := NewTemplateService(db, chars, cache.New(time.Minute, 0, 100))
	return db, chars, templates
}

func sampleConfig() models.JSONMap {
	return models.JSONMap{
		"custom_sections": []any{
			map[string]any{
				"title": "Reputation",
				"fields": []any{
					map[string]any{"key": "honor", "type": "number"},
					map[string]any{"key": "notes", "type": "textarea"},
					map[string]any{"key": "favor", "type": "number", "default": float64(10)},
					map[string]any{"type": "number"}, // no key, skipped
				},
			},
		},
	}
}

func TestComputeDefaults(t *testing.T) {
	defaults := ComputeDefaults(sampleConfig())

	assert.Equal(t, 0, defaults["honor"])
	assert.Equal(t, "", defaults["notes"])
	assert.EqualValues(t, 10, defaults["favor"])
	assert.Len(t, defaults, 3, "keyless descriptors are skipped")
}

func TestComputeDefaultsMalformedConfig(t *testing.T) {
	assert.Empty(t, ComputeDefaults(models.JSONMap{}))
	assert.Empty(t, ComputeDefaults(models.JSONMap{"custom_sections": "not-a-list"}))
	assert.Empty(t, ComputeDefaults(models.JSONMap{
		"custom_sections": []any{map[string]any{"fields": 3}},
	}))
}

func TestApplySetIfAbsent(t *testing.T) {
	db, chars, templates := newTemplateFixture(t)
	owner := createTestUser(t, db, 42)

	ch, err := chars.Create(owner.ID, "Aria")
	require.NoError(t, err)

	// The character already tracks honor; the template must not reset it.
	_, err = chars.SetCustomValues(ch.ID, owner.ID, false, models.JSONMap{"honor": 7})
	require.NoError(t, err)

	tpl, err := templates.Create(owner.ID, "Campaign sheet", sampleConfig())
	require.NoError(t, err)

	applied, err := templates.Apply(ch.ID, owner.ID, false, tpl.ID)
	require.NoError(t, err)
	require.NotNil(t, applied.TemplateID)
	assert.Equal(t, tpl.ID, *applied.TemplateID)

	bag := models.DecodeJSONMap(applied.CustomValues)
	assert.EqualValues(t, 7, bag["honor"], "existing value kept")
	assert.Equal(t, "", bag["notes"])
	assert.EqualValues(t, 10, bag["favor"])

	// Applying twice changes nothing.
	again, err := templates.Apply(ch.ID, owner.ID, false, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, applied.CustomValues, again.CustomValues)
}

func TestApplyForeignTemplateNotFound(t *testing.T) {
	db, chars, templates := newTemplateFixture(t)
	owner := createTestUser(t, db, 1)
	other := createTestUser(t, db, 2)

	ch, err := chars.Create(owner.ID, "Aria")
	require.NoError(t, err)

	tpl, err := templates.Create(other.ID, "Someone else's sheet", sampleConfig())
	require.NoError(t, err)

	_, err = templates.Apply(ch.ID, owner.ID, false, tpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteTemplateNullsReferences(t *testing.T) {
	db, chars, templates := newTemplateFixture(t)
	owner := createTestUser(t, db, 42)

	ch, err := chars.Create(owner.ID, "Aria")
	require.NoError(t, err)

	tpl, err := templates.Create(owner.ID, "Campaign sheet", sampleConfig())
	require.NoError(t, err)

	_, err = templates.Apply(ch.ID, owner.ID, false, tpl.ID)
	require.NoError(t, err)

	deleted, err := templates.Delete(tpl.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The reference is gone but the custom values survive.
	kept, err := chars.Get(ch.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Nil(t, kept.TemplateID)
	bag := models.DecodeJSONMap(kept.CustomValues)
	assert.EqualValues(t, 10, bag["favor"])

	// Deleting a missing template reports absent.
	deleted, err = templates.Delete(tpl.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateCharacterFromTemplate(t *testing.T) {
	db, _, templates := newTemplateFixture(t)
	owner := createTestUser(t, db, 42)

	tpl, err := templates.Create(owner.ID, "Ranger preset", sampleConfig())
	require.NoError(t, err)

	// Name omitted: the character inherits the template name.
	ch, err := templates.CreateCharacter(owner.ID, tpl.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Ranger preset", ch.Name)
	require.NotNil(t, ch.TemplateID)
	assert.Equal(t, tpl.ID, *ch.TemplateID)

	bag := models.DecodeJSONMap(ch.CustomValues)
	assert.EqualValues(t, 10, bag["favor"])

	named, err := templates.CreateCharacter(owner.ID, tpl.ID, "Aria")
	require.NoError(t, err)
	assert.Equal(t, "Aria", named.Name)
}

func TestConfigUsesCache(t *testing.T) {
	db, _, templates := newTemplateFixture(t)
	owner := createTestUser(t, db, 42)

	tpl, err := templates.Create(owner.ID, "Campaign sheet", sampleConfig())
	require.NoError(t, err)

	first := templates.Config(tpl)
	require.Contains(t, first, "custom_sections")

	// Mutate the stored blob behind the cache's back; the cached parse wins
	// until the entry is invalidated.
	require.NoError(t, db.Model(tpl).Update("config_json", "{}").Error)
	cached := templates.Config(tpl)
	assert.Contains(t, cached, "custom_sections")
}
