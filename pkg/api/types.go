package api

import "time"

// PunchType is one of the four daily attendance slots.
type PunchType string

const (
	Entrada     PunchType = "entrada"
	SaidaAlmoco PunchType = "saida_almoco"
	VoltaAlmoco PunchType = "volta_almoco"
	Saida       PunchType = "saida"
)

// PunchTypes lists the daily slots in the order a working day normally follows.
var PunchTypes = []PunchType{Entrada, SaidaAlmoco, VoltaAlmoco, Saida}

func (t PunchType) Valid() bool {
	switch t {
	case Entrada, SaidaAlmoco, VoltaAlmoco, Saida:
		return true
	}
	return false
}

// Label is the human text used by buttons and reports.
func (t PunchType) Label() string {
	switch t {
	case Entrada:
		return "Entrada"
	case SaidaAlmoco:
		return "Saída almoço"
	case VoltaAlmoco:
		return "Volta almoço"
	case Saida:
		return "Saída"
	}
	return string(t)
}

type Role string

const (
	RoleFuncionario Role = "funcionario"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool { return r == RoleFuncionario || r == RoleAdmin }

type User struct {
	ID           uint   `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
}

type PunchRecord struct {
	ID            uint      `json:"id"`
	UsuarioID     uint      `json:"usuario_id"`
	NomeCompleto  string    `json:"nome_completo,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	TipoRegistro  PunchType `json:"tipo_registro"`
	Justificativa string    `json:"justificativa,omitempty"`
}
