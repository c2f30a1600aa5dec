package service

import (
	"testing"

	"dnd-webapp-demo/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, 42)
	ch, err := NewCharacterService(db).Create(owner.ID, "Aria")
	require.NoError(t, err)

	svc := NewEquipmentService(db)

	eq, err := svc.GetOrCreate(ch.ID)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, eq.CharacterID)
	assert.Equal(t, "", eq.Head)

	again, err := svc.GetOrCreate(ch.ID)
	require.NoError(t, err)
	assert.Equal(t, eq.ID, again.ID, "second access reuses the same row")

	var count int64
	require.NoError(t, db.Model(&models.Equipment{}).Where("character_id = ?", ch.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEquipmentPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, 42)
	ch, err := NewCharacterService(db).Create(owner.ID, "Aria")
	require.NoError(t, err)

	svc := NewEquipmentService(db)

	eq, err := svc.Update(ch.ID, &models.EquipmentUpdate{
		Head:    strPtr("Iron helm"),
		Weapon1: strPtr("Longsword"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Iron helm", eq.Head)
	assert.Equal(t, "Longsword", eq.Weapon1)
	assert.Equal(t, "", eq.Armor)

	// An explicit empty string unequips; nil slots stay put.
	eq, err = svc.Update(ch.ID, &models.EquipmentUpdate{
		Head: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "", eq.Head)
	assert.Equal(t, "Longsword", eq.Weapon1)
}
