package models

import (
	"time"
)

// Contact is one row of the precatório contact base. The two dispatch
// flags are tri-state: nil means the corresponding step never happened.
type Contact struct {
	Phone             string `gorm:"column:telefone_principal;primaryKey" json:"telefone_principal"`
	FullName          string `gorm:"column:nome_completo;type:varchar(255)" json:"nome_completo"`
	DispatchCompleted *bool  `gorm:"column:disparo_realizado" json:"disparo_realizado"`
	DispatchScheduled *bool  `gorm:"column:disparo_agendamento" json:"disparo_agendamento"`
}

func (Contact) TableName() string {
	return "contatos_precatorios"
}

// Dispatch is a single send attempt, written by the external automation
// system. Read-only here.
type Dispatch struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"column:nome;type:varchar(255)" json:"nome"`
	Phone      string    `gorm:"column:numero_principal;type:varchar(50)" json:"numero_principal"`
	Succeeded  bool      `gorm:"column:disparo_principal" json:"disparo_principal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	InstanceID string    `gorm:"column:instancia;type:varchar(255);index" json:"instancia"`
}

func (Dispatch) TableName() string {
	return "disparos"
}

// Instance is a named WhatsApp sending endpoint. Created externally,
// read-only here.
type Instance struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"column:nome;type:varchar(255)" json:"nome"`
	Number string `gorm:"column:numero;type:varchar(50)" json:"numero"`
}

func (Instance) TableName() string {
	return "instancias"
}

// DisplayName is the "name - number" label shown everywhere in the UI and
// sent to the scheduling webhook as "instancia".
func (i Instance) DisplayName() string {
	return i.Name + " - " + i.Number
}

// DispatchParams is the per-instance schedule configuration. InstanceID is
// the join key going forward; rows written before the column existed only
// carry InstanceName. Weekdays is a comma-joined list of weekday codes
// (seg..dom).
type DispatchParams struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	InstanceID   string    `gorm:"column:instancia_id;type:varchar(255);index" json:"instancia_id"`
	InstanceName string    `gorm:"column:instancia_nome;type:varchar(255)" json:"instancia_nome"`
	BotActive    bool      `gorm:"column:bot_ativo" json:"bot_ativo"`
	WindowStart  *string   `gorm:"column:horario_inicio;type:varchar(5)" json:"horario_inicio"`
	WindowEnd    *string   `gorm:"column:horario_fim;type:varchar(5)" json:"horario_fim"`
	Weekdays     *string   `gorm:"column:dias_semana;type:text" json:"dias_semana"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DispatchParams) TableName() string {
	return "parametros_disparo"
}

// Template is a reusable message body; {{variable}} placeholders are opaque
// to this system. Soft-deleted rows stay in the table with Deleted=true.
type Template struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"column:titulo;type:varchar(255)" json:"titulo"`
	Body    string `gorm:"column:mensagem;type:text" json:"mensagem"`
	Active  bool   `gorm:"column:ativo" json:"ativo"`
	Deleted *bool  `gorm:"column:deletado" json:"deletado"`
}

func (Template) TableName() string {
	return "templates"
}

// User is a staff login.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
