package api

import (
	"net/http"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CollectionHandler serves the child collections of a character. Every route
// resolves the character first: a missing character is 404, a character the
// caller may not touch is 403 (owner or game master only).
type CollectionHandler struct {
	characters  *service.CharacterService
	collections *service.CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(characters *service.CharacterService, collections *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{characters: characters, collections: collections}
}

// resolveCharacter loads the character from the :id path segment and applies
// the owner-or-DM rule. Returns nil if the request was already answered.
func (h *CollectionHandler) resolveCharacter(c *gin.Context) *models.Character {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}

	ch, err := h.characters.GetByID(id)
	if err != nil {
		abortWithServiceError(c, err)
		return nil
	}

	if ch.OwnerUserID != user.ID && !isDM {
		c.Error(errors.NewForbiddenError("NO_ACCESS", "No access to this character"))
		return nil
	}
	return ch
}

// ListItems handles GET /characters/:id/items
func (h *CollectionHandler) ListItems(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	items, err := h.collections.ListItems(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem handles POST /characters/:id/items
func (h *CollectionHandler) AddItem(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	item, err := h.collections.AddItem(ch.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteItem handles DELETE /characters/:id/items/:itemId
func (h *CollectionHandler) DeleteItem(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	deleted, err := h.collections.DeleteItem(ch.ID, itemID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Item not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListSpells handles GET /characters/:id/spells
func (h *CollectionHandler) ListSpells(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	spells, err := h.collections.ListSpells(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, spells)
}

// AddSpell handles POST /characters/:id/spells
func (h *CollectionHandler) AddSpell(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var req models.CreateSpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	spell, err := h.collections.AddSpell(ch.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, spell)
}

// DeleteSpell handles DELETE /characters/:id/spells/:spellId
func (h *CollectionHandler) DeleteSpell(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	spellID, ok := pathID(c, "spellId")
	if !ok {
		return
	}

	deleted, err := h.collections.DeleteSpell(ch.ID, spellID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Spell not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListAbilities handles GET /characters/:id/abilities
func (h *CollectionHandler) ListAbilities(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	abilities, err := h.collections.ListAbilities(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, abilities)
}

// AddAbility handles POST /characters/:id/abilities
func (h *CollectionHandler) AddAbility(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var req models.CreateSpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	ability, err := h.collections.AddAbility(ch.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ability)
}

// DeleteAbility handles DELETE /characters/:id/abilities/:abilityId
func (h *CollectionHandler) DeleteAbility(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	abilityID, ok := pathID(c, "abilityId")
	if !ok {
		return
	}

	deleted, err := h.collections.DeleteAbility(ch.ID, abilityID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Ability not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListStates handles GET /characters/:id/states
func (h *CollectionHandler) ListStates(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	states, err := h.collections.ListStates(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, states)
}

// AddState handles POST /characters/:id/states
func (h *CollectionHandler) AddState(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var req models.CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	state, err := h.collections.AddState(ch.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// DeleteState handles DELETE /characters/:id/states/:stateId
func (h *CollectionHandler) DeleteState(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	stateID, ok := pathID(c, "stateId")
	if !ok {
		return
	}

	deleted, err := h.collections.DeleteState(ch.ID, stateID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "State not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListSummons handles GET /characters/:id/summons
func (h *CollectionHandler) ListSummons(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	summons, err := h.collections.ListSummons(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summons)
}

// AddSummon handles POST /characters/:id/summons
func (h *CollectionHandler) AddSummon(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var req models.CreateSummonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	summon, err := h.collections.AddSummon(ch.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, summon)
}

// DeleteSummon handles DELETE /characters/:id/summons/:summonId
func (h *CollectionHandler) DeleteSummon(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	summonID, ok := pathID(c, "summonId")
	if !ok {
		return
	}

	deleted, err := h.collections.DeleteSummon(ch.ID, summonID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Summon not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
