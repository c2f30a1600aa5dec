package api

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CharacterHandler serves the character CRUD surface.
type CharacterHandler struct {
	characters *service.CharacterService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// List handles GET /characters
func (h *CharacterHandler) List(c *gin.Context) {
	user, _, _ := currentUser(c)

	chars, err := h.characters.ListByOwner(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	summaries := make([]models.CharacterSummary, 0, len(chars))
	for _, ch := range chars {
		summaries = append(summaries, ch.Summary())
	}
	c.JSON(http.StatusOK, summaries)
}

// Create handles POST /characters
func (h *CharacterHandler) Create(c *gin.Context) {
	user, _, _ := currentUser(c)

	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	ch, err := h.characters.Create(user.ID, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": ch.ID, "name": ch.Name})
}

// Get handles GET /characters/:id
func (h *CharacterHandler) Get(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ch, err := h.characters.Get(id, user.ID, isDM)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, characterDetail(ch))
}

// Update handles PATCH /characters/:id
func (h *CharacterHandler) Update(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var upd models.CharacterUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "malformed update payload"))
		return
	}

	ch, err := h.characters.Update(id, user.ID, isDM, &upd)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	// Clamped values are returned so the client never diverges from the
	// stored state.
	c.JSON(http.StatusOK, characterDetail(ch))
}

// UpdateCustom handles PATCH /characters/:id/custom
func (h *CharacterHandler) UpdateCustom(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CustomValuesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "values object is required"))
		return
	}

	ch, err := h.characters.SetCustomValues(id, user.ID, isDM, req.Values)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            ch.ID,
		"custom_values": models.DecodeJSONMap(ch.CustomValues),
	})
}

// characterDetail renders a character with its parsed custom-values bag.
func characterDetail(ch *models.Character) gin.H {
	return gin.H{
		"character":     ch,
		"custom_values": models.DecodeJSONMap(ch.CustomValues),
	}
}

// pathID parses a numeric path parameter, reporting 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "invalid id format"))
		return 0, false
	}
	return uint(id), true
}

// abortWithServiceError maps service sentinels onto transport errors.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, service.ErrCharacterNotFound):
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Character not found"))
	case stderrors.Is(err, service.ErrTemplateNotFound):
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Template not found"))
	default:
		c.Error(err)
	}
}
