package api

import (
	"context"
	"log"
	"net/http"

	"disparo-dashboard/internal/automation"

	"github.com/gin-gonic/gin"
)

// CadenceSender is the webhook side of the cadence settings, satisfied by
// *automation.Client.
type CadenceSender interface {
	SendCadence(ctx context.Context, p automation.CadencePayload) error
}

type SettingsHandler struct {
	Sender CadenceSender
}

func NewSettingsHandler(sender CadenceSender) *SettingsHandler {
	return &SettingsHandler{Sender: sender}
}

type CadenceRequest struct {
	Instance           string  `json:"instancia" binding:"required"`
	DispatchesPerHour  int     `json:"disparosPorHora"`
	Interval           float64 `json:"intervaloEntreDisparos"`
	DailyLimit         int     `json:"limiteDiario"`
	RandomizeIntervals bool    `json:"intervaloAleatorio"`
}

// SaveCadence validates and forwards the sending-rate limits for an
// instance. The limits are enforced by the external automation system,
// not here.
func (h *SettingsHandler) SaveCadence(c *gin.Context) {
	var req CadenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.DispatchesPerHour <= 0 || req.DailyLimit <= 0 || req.Interval <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valores devem ser maiores que zero"})
		return
	}

	err := h.Sender.SendCadence(c.Request.Context(), automation.CadencePayload{
		Instancia:              req.Instance,
		DisparosPorHora:        req.DispatchesPerHour,
		IntervaloEntreDisparos: req.Interval,
		LimiteDiario:           req.DailyLimit,
		IntervaloAleatorio:     req.RandomizeIntervals,
	})
	if err != nil {
		log.Printf("Error saving cadence for %s: %v", req.Instance, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao salvar configurações"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configurações salvas com sucesso!"})
}
