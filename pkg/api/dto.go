package api

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        Role   `json:"role"`
}

// MessageResponse is the body of every mutation response and of every error.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type TodayResponse struct {
	ID            uint        `json:"id"`
	NomeCompleto  string      `json:"nome_completo"`
	Username      string      `json:"username"`
	Role          Role        `json:"role"`
	RegistrosHoje []PunchType `json:"registros_hoje"`
}

type PunchRequest struct {
	Tipo PunchType `json:"tipo"`
}

type CreateUserRequest struct {
	NomeCompleto string `json:"nome_completo"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         Role   `json:"role"`
}

// UpdateUserRequest leaves Password nil to keep the stored password.
type UpdateUserRequest struct {
	NomeCompleto string  `json:"nome_completo"`
	Username     string  `json:"username"`
	Password     *string `json:"password,omitempty"`
	Role         Role    `json:"role"`
}

// ManualEntryRequest carries up to four "HH:MM" times for one user on one date.
type ManualEntryRequest struct {
	UsuarioID     uint   `json:"usuario_id"`
	Data          string `json:"data"`
	Entrada       string `json:"entrada,omitempty"`
	SaidaAlmoco   string `json:"saida_almoco,omitempty"`
	VoltaAlmoco   string `json:"volta_almoco,omitempty"`
	Saida         string `json:"saida,omitempty"`
	Justificativa string `json:"justificativa,omitempty"`
}

// Times maps each filled slot to its time of day.
func (r ManualEntryRequest) Times() map[PunchType]string {
	out := map[PunchType]string{}
	for t, v := range map[PunchType]string{
		Entrada:     r.Entrada,
		SaidaAlmoco: r.SaidaAlmoco,
		VoltaAlmoco: r.VoltaAlmoco,
		Saida:       r.Saida,
	} {
		if v != "" {
			out[t] = v
		}
	}
	return out
}

type ManualEntryResponse struct {
	Msg     string `json:"msg"`
	Criados int    `json:"criados"`
}

type UpdateRecordRequest struct {
	Timestamp     string `json:"timestamp"`
	Justificativa string `json:"justificativa"`
}
