package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"
	"disparo-dashboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrPartialWrite marks the known inconsistency of the two-phase template
// write: the automation webhook accepted the change but the local table
// did not. The two systems disagree until someone reconciles them.
var ErrPartialWrite = errors.New("external write succeeded but local save failed")

// TemplateSender is the webhook side of the two-phase template writes,
// satisfied by *automation.Client.
type TemplateSender interface {
	SendTemplateAction(ctx context.Context, p automation.TemplatePayload) error
}

type TemplateHandler struct {
	Sender TemplateSender
	Hub    *ws.Hub
}

func NewTemplateHandler(sender TemplateSender, hub *ws.Hub) *TemplateHandler {
	return &TemplateHandler{Sender: sender, Hub: hub}
}

// GetTemplates lists templates, hiding soft-deleted rows.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var templates []models.Template
	if err := database.DB.Where("deletado IS NULL OR deletado = ?", false).Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os templates"})
		return
	}

	if templates == nil {
		templates = []models.Template{}
	}
	c.JSON(http.StatusOK, templates)
}

type CreateTemplateRequest struct {
	Title string `json:"titulo"`
	Body  string `json:"mensagem"`
}

// CreateTemplate runs the two-phase write: push to the automation webhook
// first, then persist locally. The phases are not transactional; a webhook
// success followed by a local failure is reported as a partial write, not
// rolled back.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos"})
		return
	}

	id := uuid.NewString()

	if err := h.Sender.SendTemplateAction(c.Request.Context(), automation.NewTemplateCreate(id, req.Title, req.Body)); err != nil {
		log.Printf("Error pushing template create to webhook: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao criar template"})
		return
	}

	deleted := false
	template := models.Template{
		ID:      id,
		Title:   req.Title,
		Body:    req.Body,
		Active:  true,
		Deleted: &deleted,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		log.Printf("Partial template write for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   ErrPartialWrite.Error(),
			"id":      id,
			"partial": true,
		})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: "template_created", Data: template})
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Template criado com sucesso!", "template": template})
}

// ToggleTemplate flips the active flag, webhook first.
func (h *TemplateHandler) ToggleTemplate(c *gin.Context) {
	id := c.Param("id")

	var template models.Template
	if err := database.DB.Where("id = ? AND (deletado IS NULL OR deletado = ?)", id, false).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template não encontrado"})
		return
	}

	newActive := !template.Active

	if err := h.Sender.SendTemplateAction(c.Request.Context(), automation.NewTemplateToggle(id, newActive)); err != nil {
		log.Printf("Error pushing template toggle to webhook: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao atualizar template"})
		return
	}

	if err := database.DB.Model(&template).Update("ativo", newActive).Error; err != nil {
		log.Printf("Partial template toggle for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrPartialWrite.Error(), "id": id, "partial": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template atualizado com sucesso!", "ativo": newActive})
}

// DeleteTemplate soft-deletes, webhook first. The row is never physically
// removed by this app.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")

	var template models.Template
	if err := database.DB.Where("id = ? AND (deletado IS NULL OR deletado = ?)", id, false).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template não encontrado"})
		return
	}

	if err := h.Sender.SendTemplateAction(c.Request.Context(), automation.NewTemplateDelete(id)); err != nil {
		log.Printf("Error pushing template delete to webhook: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao excluir template"})
		return
	}

	if err := database.DB.Model(&template).Update("deletado", true).Error; err != nil {
		log.Printf("Partial template delete for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrPartialWrite.Error(), "id": id, "partial": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template excluído com sucesso!"})
}
