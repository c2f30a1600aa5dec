package api

import (
	"net/http"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// EquipmentHandler serves the per-character equipment singleton.
type EquipmentHandler struct {
	characters *service.CharacterService
	equipment  *service.EquipmentService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(characters *service.CharacterService, equipment *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{characters: characters, equipment: equipment}
}

func (h *EquipmentHandler) resolveCharacter(c *gin.Context) *models.Character {
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

// Get handles GET /characters/:id/equipment
func (h *EquipmentHandler) Get(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	eq, err := h.equipment.GetOrCreate(ch.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// Update handles PATCH /characters/:id/equipment
func (h *EquipmentHandler) Update(c *gin.Context) {
	ch := h.resolveCharacter(c)
	if ch == nil {
		return
	}

	var upd models.EquipmentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "malformed equipment payload"))
		return
	}

	eq, err := h.equipment.Update(ch.ID, &upd)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, eq)
}
