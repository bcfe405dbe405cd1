package schedule

import (
	"strings"

	"disparo-dashboard/internal/models"
)

const (
	DefaultWindowStart = "08:00"
	DefaultWindowEnd   = "18:00"
)

// DefaultWeekdays is the seg..sex working week every card starts from.
func DefaultWeekdays() []string {
	return []string{"seg", "ter", "qua", "qui", "sex"}
}

// SplitWeekdays decodes the comma-joined weekday column.
func SplitWeekdays(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinWeekdays encodes a weekday list for storage.
func JoinWeekdays(days []string) string {
	return strings.Join(days, ",")
}

// ReconciledParams is the per-instance view the schedule cards render.
type ReconciledParams struct {
	InstanceID   string   `json:"instancia_id"`
	InstanceName string   `json:"instancia_nome"`
	DisplayName  string   `json:"instancia"`
	BotActive    bool     `json:"bot_ativo"`
	WindowStart  string   `json:"horario_inicio"`
	WindowEnd    string   `json:"horario_fim"`
	Weekdays     []string `json:"dias_semana"`
}

// Reconcile joins the instance list with the dispatch parameter list,
// producing exactly one fully-defaulted entry per instance. Matching
// prefers the instance id; rows written before that column existed only
// carry the instance name, so name equality remains as a compatibility
// shim. When several rows name the same instance the first one in store
// order wins; that order is not defined.
func Reconcile(instances []models.Instance, params []models.DispatchParams) map[string]ReconciledParams {
	out := make(map[string]ReconciledParams, len(instances))
	for _, inst := range instances {
		rp := ReconciledParams{
			InstanceID:   inst.ID,
			InstanceName: inst.Name,
			DisplayName:  inst.DisplayName(),
			BotActive:    false,
			WindowStart:  DefaultWindowStart,
			WindowEnd:    DefaultWindowEnd,
			Weekdays:     DefaultWeekdays(),
		}
		if p := matchParams(inst, params); p != nil {
			rp.BotActive = p.BotActive
			if p.WindowStart != nil && *p.WindowStart != "" {
				rp.WindowStart = *p.WindowStart
			}
			if p.WindowEnd != nil && *p.WindowEnd != "" {
				rp.WindowEnd = *p.WindowEnd
			}
			if p.Weekdays != nil && *p.Weekdays != "" {
				rp.Weekdays = SplitWeekdays(*p.Weekdays)
			}
		}
		out[inst.ID] = rp
	}
	return out
}

func matchParams(inst models.Instance, params []models.DispatchParams) *models.DispatchParams {
	for i := range params {
		if params[i].InstanceID != "" && params[i].InstanceID == inst.ID {
			return &params[i]
		}
	}
	for i := range params {
		if params[i].InstanceID == "" && params[i].InstanceName == inst.Name {
			return &params[i]
		}
	}
	return nil
}
