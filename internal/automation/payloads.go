package automation

// SchedulePayload is the body of the dispatch scheduling/action endpoint.
// Field names are fixed by the n8n flow on the other side.
type SchedulePayload struct {
	Tipo          string   `json:"tipo"` // "Manual" or "Agendamento"
	Instancia     string   `json:"instancia"`
	InstanciaNome string   `json:"instancia_nome"`
	HorarioInicio string   `json:"horario_inicio"`
	HorarioFim    string   `json:"horario_fim"`
	DiasSemana    []string `json:"dias_semana"`
	BotAtivo      bool     `json:"bot_ativo"`
}

// TemplatePayload covers the three template actions. Which fields are set
// depends on ActionType, so the constructors below are the only way these
// should be built.
type TemplatePayload struct {
	ID         string `json:"id"`
	Titulo     string `json:"titulo,omitempty"`
	Mensagem   string `json:"mensagem,omitempty"`
	Ativo      *bool  `json:"ativo,omitempty"`
	ActionType string `json:"action_type"`
}

func NewTemplateCreate(id, titulo, mensagem string) TemplatePayload {
	ativo := true
	return TemplatePayload{
		ID:         id,
		Titulo:     titulo,
		Mensagem:   mensagem,
		Ativo:      &ativo,
		ActionType: "create",
	}
}

func NewTemplateToggle(id string, ativo bool) TemplatePayload {
	return TemplatePayload{
		ID:         id,
		Ativo:      &ativo,
		ActionType: "toggle_status",
	}
}

func NewTemplateDelete(id string) TemplatePayload {
	return TemplatePayload{
		ID:         id,
		ActionType: "delete",
	}
}

// ImportPayload is the body of the contact import endpoint.
type ImportPayload struct {
	Contacts       []map[string]interface{} `json:"contacts"`
	Filename       string                   `json:"filename"`
	ImportedAt     string                   `json:"importedAt"`
	TipoImportacao string                   `json:"tipoImportacao"` // "json" or "planilha"
}

// InstancePayload asks the automation system to create a WhatsApp session
// and hand back a pairing QR code.
type InstancePayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CadencePayload carries the sending-rate limits for one instance.
type CadencePayload struct {
	Instancia              string  `json:"instancia"`
	DisparosPorHora        int     `json:"disparosPorHora"`
	IntervaloEntreDisparos float64 `json:"intervaloEntreDisparos"`
	LimiteDiario           int     `json:"limiteDiario"`
	IntervaloAleatorio     bool    `json:"intervaloAleatorio"`
}
