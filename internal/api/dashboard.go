package api

import (
	"log"
	"net/http"
	"sort"
	"time"

	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"
	"disparo-dashboard/internal/status"

	"github.com/gin-gonic/gin"
)

// recentDispatchLimit caps the recent-activity table.
const recentDispatchLimit = 8

type DashboardHandler struct {
	loc *time.Location
}

func NewDashboardHandler() *DashboardHandler {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		log.Printf("Warning: could not load America/Sao_Paulo, using UTC: %v", err)
		loc = time.UTC
	}
	return &DashboardHandler{loc: loc}
}

// DispatchRow is one line of the recent-activity table.
type DispatchRow struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Phone    string `json:"telefone"`
	Status   string `json:"status"`
	Date     string `json:"data"`
	Instance string `json:"instancia"`
}

// InstanceCount is one bar of the per-instance chart.
type InstanceCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GetSummary returns the status-card counters, the 8 most recent
// dispatches, and the per-instance dispatch breakdown in one shot.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var contacts []models.Contact
	if err := database.DB.Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os contatos"})
		return
	}

	var tally status.Tally
	for _, contact := range contacts {
		tally.Add(contact.DispatchCompleted, contact.DispatchScheduled)
	}

	var recent []models.Dispatch
	if err := database.DB.Order("created_at DESC").Limit(recentDispatchLimit).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os disparos"})
		return
	}

	rows := make([]DispatchRow, 0, len(recent))
	for _, d := range recent {
		st := "error"
		if d.Succeeded {
			st = "success"
		}
		rows = append(rows, DispatchRow{
			ID:       d.ID,
			Name:     d.Name,
			Phone:    d.Phone,
			Status:   st,
			Date:     d.CreatedAt.In(h.loc).Format("02-01-06 | 15:04"),
			Instance: d.InstanceID,
		})
	}

	chart, err := h.countByInstance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os disparos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contatos":      tally,
		"recentes":      rows,
		"por_instancia": chart,
	})
}

// countByInstance aggregates dispatch counts per instance the same way the
// old frontend did: over the raw instancia column, with a placeholder for
// rows that never got one.
func (h *DashboardHandler) countByInstance() ([]InstanceCount, error) {
	var dispatches []models.Dispatch
	if err := database.DB.Select("instancia").Find(&dispatches).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, d := range dispatches {
		name := d.InstanceID
		if name == "" {
			name = "Sem Instância"
		}
		counts[name]++
	}

	result := make([]InstanceCount, 0, len(counts))
	for name, value := range counts {
		result = append(result, InstanceCount{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}
