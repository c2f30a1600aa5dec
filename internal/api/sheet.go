package api

import (
	"net/http"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SheetHandler serves the aggregate view and the export/import codec.
type SheetHandler struct {
	sheets *service.SheetService
}

// NewSheetHandler creates a new sheet handler
func NewSheetHandler(sheets *service.SheetService) *SheetHandler {
	return &SheetHandler{sheets: sheets}
}

// Get handles GET /characters/:id/sheet
func (h *SheetHandler) Get(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.sheets.GetSheet(id, user.ID, isDM)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Export handles GET /characters/:id/export
func (h *SheetHandler) Export(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.sheets.Export(id, user.ID, isDM)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Import handles POST /characters/import
func (h *SheetHandler) Import(c *gin.Context) {
	user, _, _ := currentUser(c)

	var doc models.SheetDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "malformed sheet document"))
		return
	}

	ch, err := h.sheets.Import(user.ID, &doc)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, characterDetail(ch))
}
