package schedule

import (
	"fmt"

	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/models"
)

// Action identifies one of the three card buttons.
type Action string

const (
	ActionManual   Action = "manual"
	ActionStop     Action = "stop"
	ActionSchedule Action = "schedule"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionManual, ActionStop, ActionSchedule:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Tipo is the semantic type the scheduling webhook expects. Manual and
// stop both go out as "Manual"; only scheduling is "Agendamento".
func (a Action) Tipo() string {
	if a == ActionSchedule {
		return "Agendamento"
	}
	return "Manual"
}

// ActionRequest carries the card inputs for one button press.
type ActionRequest struct {
	StartTime string
	EndTime   string
	Weekdays  []string
}

// BuildPayload assembles the webhook body for an action against an
// instance. Empty time inputs fall back to the default window. Stop always
// clears the weekday list and turns the bot off, regardless of the current
// selection.
func BuildPayload(a Action, inst models.Instance, req ActionRequest) automation.SchedulePayload {
	start := req.StartTime
	if start == "" {
		start = DefaultWindowStart
	}
	end := req.EndTime
	if end == "" {
		end = DefaultWindowEnd
	}

	dias := req.Weekdays
	if a == ActionStop || dias == nil {
		dias = []string{}
	}

	return automation.SchedulePayload{
		Tipo:          a.Tipo(),
		Instancia:     inst.DisplayName(),
		InstanciaNome: inst.Name,
		HorarioInicio: start,
		HorarioFim:    end,
		DiasSemana:    dias,
		BotAtivo:      a != ActionStop,
	}
}
