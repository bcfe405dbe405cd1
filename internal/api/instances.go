package api

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"

	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

// phonePattern allows digits plus the usual formatting characters.
var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// InstanceConnector is the webhook side of session creation, satisfied by
// *automation.Client.
type InstanceConnector interface {
	ConnectInstance(ctx context.Context, p automation.InstancePayload) (string, error)
}

type InstanceHandler struct {
	Connector InstanceConnector
}

func NewInstanceHandler(connector InstanceConnector) *InstanceHandler {
	return &InstanceHandler{Connector: connector}
}

// InstanceRow is an instance plus its synthesized display label.
type InstanceRow struct {
	models.Instance
	DisplayName string `json:"formatado"`
}

// GetInstances lists the sending instances. They are created externally;
// this endpoint is read-only.
func (h *InstanceHandler) GetInstances(c *gin.Context) {
	var instances []models.Instance
	if err := database.DB.Find(&instances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar as instâncias"})
		return
	}

	rows := make([]InstanceRow, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, InstanceRow{Instance: inst, DisplayName: inst.DisplayName()})
	}
	c.JSON(http.StatusOK, rows)
}

type ConnectRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone) && len(nonDigits.ReplaceAllString(phone, "")) >= 10
}

// Connect asks the automation system for a new WhatsApp session and
// returns the pairing QR code as base64 PNG.
func (h *InstanceHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, insira o nome da instância"})
		return
	}
	if req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, insira o número do WhatsApp"})
		return
	}
	if !validPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, insira um número de WhatsApp válido"})
		return
	}

	qr, err := h.Connector.ConnectInstance(c.Request.Context(), automation.InstancePayload{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		log.Printf("Error connecting instance %s: %v", req.Name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao gerar QR Code. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qrcode":  qr,
		"message": "QR Code gerado com sucesso! Escaneie com seu WhatsApp.",
	})
}
