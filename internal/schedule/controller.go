package schedule

import (
	"context"
	"errors"
	"log"
	"sync"

	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/models"
)

// ErrActionInFlight rejects a second action on a card that is already
// busy. The UI disables all three buttons while one runs; this enforces
// the same serialization on the API side.
var ErrActionInFlight = errors.New("another action is already running for this instance")

// ActionSender is the outbound side of the controller, satisfied by
// *automation.Client.
type ActionSender interface {
	SendScheduleAction(ctx context.Context, p automation.SchedulePayload) error
}

// ParamsStore persists the parameter upsert after a successful action.
type ParamsStore interface {
	UpsertParams(ctx context.Context, p models.DispatchParams) error
}

// CardState is what the schedule page reads for one instance card.
// Running is empty when the card is idle.
type CardState struct {
	Active  bool   `json:"bot_ativo"`
	Running Action `json:"executando,omitempty"`
}

type card struct {
	active    bool
	hasActive bool // whether an action has set the flag since startup
	running   Action
}

// Controller tracks per-instance card state and drives the scheduling
// webhook. Cards are independent; actions on different instances never
// interact, while actions on the same card are serialized.
type Controller struct {
	sender ActionSender
	store  ParamsStore

	mu    sync.Mutex
	cards map[string]*card
}

func NewController(sender ActionSender, store ParamsStore) *Controller {
	return &Controller{
		sender: sender,
		store:  store,
		cards:  make(map[string]*card),
	}
}

// State returns the current card state for an instance. fallbackActive is
// the reconciled bot_ativo from the store, used until an action has run.
func (c *Controller) State(instanceID string, fallbackActive bool) CardState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := CardState{Active: fallbackActive}
	if cd, ok := c.cards[instanceID]; ok {
		if cd.hasActive {
			state.Active = cd.active
		}
		state.Running = cd.running
	}
	return state
}

// PerformAction runs one card action end to end: marks the card busy,
// posts the payload, and on success flips the active flag and persists the
// parameter upsert. The busy slot is always cleared, success or not, and a
// failed action leaves the active flag untouched. One attempt, no retry.
func (c *Controller) PerformAction(ctx context.Context, inst models.Instance, action Action, req ActionRequest) (CardState, error) {
	if err := c.begin(inst.ID, action); err != nil {
		return c.State(inst.ID, false), err
	}
	defer c.finish(inst.ID)

	payload := BuildPayload(action, inst, req)
	if err := c.sender.SendScheduleAction(ctx, payload); err != nil {
		return c.State(inst.ID, false), err
	}

	active := action != ActionStop
	c.setActive(inst.ID, active)

	if c.store != nil {
		dias := JoinWeekdays(payload.DiasSemana)
		params := models.DispatchParams{
			InstanceID:   inst.ID,
			InstanceName: inst.Name,
			BotActive:    active,
			WindowStart:  &payload.HorarioInicio,
			WindowEnd:    &payload.HorarioFim,
			Weekdays:     &dias,
		}
		// The webhook already accepted the action; a failed local upsert
		// only costs the next page load its saved window, so log and move on.
		if err := c.store.UpsertParams(ctx, params); err != nil {
			log.Printf("Error persisting dispatch parameters for %s: %v", inst.Name, err)
		}
	}

	return c.State(inst.ID, active), nil
}

func (c *Controller) begin(instanceID string, action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cd, ok := c.cards[instanceID]
	if !ok {
		cd = &card{}
		c.cards[instanceID] = cd
	}
	if cd.running != "" {
		return ErrActionInFlight
	}
	cd.running = action
	return nil
}

func (c *Controller) finish(instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cd, ok := c.cards[instanceID]; ok {
		cd.running = ""
	}
}

func (c *Controller) setActive(instanceID string, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cd, ok := c.cards[instanceID]; ok {
		cd.active = active
		cd.hasActive = true
	}
}

// SuccessMessage is the user-facing notice for a completed action.
func SuccessMessage(a Action) string {
	switch a {
	case ActionManual:
		return "Bot ativado com sucesso!"
	case ActionStop:
		return "Bot desativado com sucesso!"
	default:
		return "Agendamento salvo com sucesso!"
	}
}
