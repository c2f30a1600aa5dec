package api

import (
	"net/http"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves sheet-template CRUD and template application.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List handles GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	user, _, _ := currentUser(c)

	templates, err := h.templates.ListByOwner(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	out := make([]models.TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, models.TemplateResponse{
			ID:     templates[i].ID,
			Name:   templates[i].Name,
			Config: h.templates.Config(&templates[i]),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /templates
func (h *TemplateHandler) Create(c *gin.Context) {
	user, _, _ := currentUser(c)

	var req models.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "name is required"))
		return
	}

	tpl, err := h.templates.Create(user.ID, req.Name, req.Config)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.TemplateResponse{
		ID:     tpl.ID,
		Name:   tpl.Name,
		Config: h.templates.Config(tpl),
	})
}

// Delete handles DELETE /templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	user, _, _ := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.templates.Delete(id, user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(errors.NewNotFoundError("NOT_FOUND", "Template not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateCharacter handles POST /templates/:id/create-character
func (h *TemplateHandler) CreateCharacter(c *gin.Context) {
	user, _, _ := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// Name is optional; the template name is used when absent.
	var req struct {
		Name string `json:"name"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "malformed payload"))
			return
		}
	}

	ch, err := h.templates.CreateCharacter(user.ID, id, req.Name)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, characterDetail(ch))
}

// Apply handles POST /characters/:id/apply-template
func (h *TemplateHandler) Apply(c *gin.Context) {
	user, _, isDM := currentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("VALIDATION_ERROR", "template_id is required"))
		return
	}

	ch, err := h.templates.Apply(id, user.ID, isDM, req.TemplateID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, characterDetail(ch))
}
