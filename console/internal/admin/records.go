package admin

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"ponto/pkg/api"
)

var ErrNoTimes = errors.New("informe ao menos um horário")

// RecordFilter is the admin search over punch records. Nil fields are left out of the query.
type RecordFilter struct {
	UsuarioID *uint
	Ano       int
	Mes       int
	Dia       *int
}

func (f RecordFilter) Query() url.Values {
	q := url.Values{}
	if f.UsuarioID != nil {
		q.Set("usuario_id", strconv.FormatUint(uint64(*f.UsuarioID), 10))
	}
	q.Set("ano", strconv.Itoa(f.Ano))
	q.Set("mes", strconv.Itoa(f.Mes))
	if f.Dia != nil {
		q.Set("dia", strconv.Itoa(*f.Dia))
	}
	return q
}

// ReportQuery is the report download query: the month and an optional user.
func (f RecordFilter) ReportQuery() url.Values {
	q := f.Query()
	q.Del("dia")
	return q
}

// ParseOptionalUint turns blank input into nil.
func ParseOptionalUint(s string) (*uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, err
	}
	v := uint(n)
	return &v, nil
}

func ParseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ManualEntry is a full-day insert for one user; blank times are skipped.
type ManualEntry struct {
	UsuarioID     uint
	Data          string
	Entrada       string
	SaidaAlmoco   string
	VoltaAlmoco   string
	Saida         string
	Justificativa string
}

func (e ManualEntry) Count() int {
	n := 0
	for _, v := range []string{e.Entrada, e.SaidaAlmoco, e.VoltaAlmoco, e.Saida} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

func (e ManualEntry) Payload() (api.ManualEntryRequest, error) {
	if e.UsuarioID == 0 || strings.TrimSpace(e.Data) == "" {
		return api.ManualEntryRequest{}, errors.New("funcionário e data são obrigatórios")
	}
	if e.Count() == 0 {
		return api.ManualEntryRequest{}, ErrNoTimes
	}
	return api.ManualEntryRequest{
		UsuarioID:     e.UsuarioID,
		Data:          strings.TrimSpace(e.Data),
		Entrada:       strings.TrimSpace(e.Entrada),
		SaidaAlmoco:   strings.TrimSpace(e.SaidaAlmoco),
		VoltaAlmoco:   strings.TrimSpace(e.VoltaAlmoco),
		Saida:         strings.TrimSpace(e.Saida),
		Justificativa: strings.TrimSpace(e.Justificativa),
	}, nil
}
