package api

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"
	"disparo-dashboard/internal/schedule"
	"disparo-dashboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	Controller *schedule.Controller
	Hub        *ws.Hub
}

func NewScheduleHandler(controller *schedule.Controller, hub *ws.Hub) *ScheduleHandler {
	return &ScheduleHandler{Controller: controller, Hub: hub}
}

// ScheduleCard is one entry of the scheduling page: the reconciled
// parameters plus the live card state.
type ScheduleCard struct {
	schedule.ReconciledParams
	Running schedule.Action `json:"executando,omitempty"`
}

// GetSchedule joins instances with their dispatch parameters and overlays
// the in-memory card state. The reconciliation is recomputed on every
// request; nothing here is cached.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var instances []models.Instance
	if err := database.DB.Find(&instances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar as instâncias"})
		return
	}

	var params []models.DispatchParams
	if err := database.DB.Find(&params).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os parâmetros de disparo"})
		return
	}

	reconciled := schedule.Reconcile(instances, params)

	cards := make([]ScheduleCard, 0, len(instances))
	for _, inst := range instances {
		rp := reconciled[inst.ID]
		state := h.Controller.State(inst.ID, rp.BotActive)
		rp.BotActive = state.Active
		cards = append(cards, ScheduleCard{ReconciledParams: rp, Running: state.Running})
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].DisplayName < cards[j].DisplayName })

	c.JSON(http.StatusOK, cards)
}

type ActionRequest struct {
	Action    string   `json:"action" binding:"required"`
	StartTime string   `json:"horario_inicio"`
	EndTime   string   `json:"horario_fim"`
	Weekdays  []string `json:"dias_semana"`
}

// PerformAction runs one card button press: manual activation, stop, or
// schedule save.
func (h *ScheduleHandler) PerformAction(c *gin.Context) {
	id := c.Param("id")

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := schedule.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inst models.Instance
	if err := database.DB.First(&inst, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instância não encontrada"})
		return
	}

	state, err := h.Controller.PerformAction(c.Request.Context(), inst, action, schedule.ActionRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Weekdays:  req.Weekdays,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrActionInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "Aguarde a ação em andamento terminar"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao enviar dados. Verifique sua conexão."})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: "schedule_action", Data: gin.H{
			"instancia_id": inst.ID,
			"action":       string(action),
			"bot_ativo":    state.Active,
		}})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   schedule.SuccessMessage(action),
		"bot_ativo": state.Active,
	})
}

// GormParamsStore persists the post-action parameter upsert, keyed on the
// instance id. Legacy rows carry only the instance name, so the lookup
// cannot rely on a unique index; it is a find-then-write instead.
type GormParamsStore struct{}

func (GormParamsStore) UpsertParams(ctx context.Context, p models.DispatchParams) error {
	db := database.DB.WithContext(ctx)

	var existing models.DispatchParams
	err := db.Where("instancia_id = ?", p.InstanceID).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Updates(map[string]interface{}{
			"instancia_nome": p.InstanceName,
			"bot_ativo":      p.BotActive,
			"horario_inicio": p.WindowStart,
			"horario_fim":    p.WindowEnd,
			"dias_semana":    p.Weekdays,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	p.ID = uuid.NewString()
	return db.Create(&p).Error
}
