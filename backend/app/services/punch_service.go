package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ponto/backend/app/models"
	"ponto/backend/app/repo"
	"ponto/pkg/api"

	"gorm.io/gorm"
)

type PunchService struct {
	punches *repo.PunchRepository
	users   *UserService
	lock    *PunchLock
	loc     *time.Location
	Now     func() time.Time
}

func NewPunchService(punches *repo.PunchRepository, users *UserService, lock *PunchLock, loc *time.Location) *PunchService {
	if loc == nil {
		loc = time.Local
	}
	return &PunchService{punches: punches, users: users, lock: lock, loc: loc, Now: time.Now}
}

// RecordFilter selects records by month, optionally narrowed to one user and one day.
type RecordFilter struct {
	UsuarioID uint
	Ano       int
	Mes       int
	Dia       int
}

func (s *PunchService) Location() *time.Location { return s.loc }

func (s *PunchService) dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(s.loc)
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 0, 1)
}

func (s *PunchService) bounds(f RecordFilter) (time.Time, time.Time, error) {
	if f.Ano < 1 || f.Ano > 9999 {
		return time.Time{}, time.Time{}, invalid("Ano inválido.")
	}
	if f.Mes < 1 || f.Mes > 12 {
		return time.Time{}, time.Time{}, invalid("Mês inválido.")
	}
	from := time.Date(f.Ano, time.Month(f.Mes), 1, 0, 0, 0, 0, s.loc)
	if f.Dia == 0 {
		return from, from.AddDate(0, 1, 0), nil
	}
	day := from.AddDate(0, 0, f.Dia-1)
	if f.Dia < 1 || day.Month() != from.Month() {
		return time.Time{}, time.Time{}, invalid("Dia inválido.")
	}
	return day, day.AddDate(0, 0, 1), nil
}

// Register records tipo for the user at the current time. A type may be used once per day.
func (s *PunchService) Register(ctx context.Context, usuarioID uint, tipo api.PunchType) (*models.PunchRecord, error) {
	if !tipo.Valid() {
		return nil, invalid(fmt.Sprintf("Tipo de registro inválido: '%s'.", tipo))
	}
	now := s.Now()
	from, to := s.dayBounds(now)

	key := punchLockKey(usuarioID, from.Format("2006-01-02"), string(tipo))
	ok, err := s.lock.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("acquire punch lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyPunched
	}
	defer s.lock.Release(context.WithoutCancel(ctx), key)

	p := &models.PunchRecord{UsuarioID: usuarioID, Timestamp: now.UTC(), TipoRegistro: string(tipo)}
	if err := s.punches.CreateOnce(p, from, to); err != nil {
		switch {
		case errors.Is(err, repo.ErrTypeTaken):
			return nil, ErrAlreadyPunched
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PunchService) Today(usuarioID uint) (*api.TodayResponse, error) {
	u, err := s.users.Get(usuarioID)
	if err != nil {
		return nil, err
	}
	from, to := s.dayBounds(s.Now())
	used, err := s.punches.TypesBetween(usuarioID, from, to)
	if err != nil {
		return nil, err
	}
	types := make([]api.PunchType, 0, len(used))
	for _, t := range used {
		types = append(types, api.PunchType(t))
	}
	return &api.TodayResponse{
		ID: u.ID, NomeCompleto: u.NomeCompleto, Username: u.Username, Role: api.Role(u.Role),
		RegistrosHoje: types,
	}, nil
}

// List returns records matching f, timestamps expressed in the service location.
func (s *PunchService) List(f RecordFilter) ([]api.PunchRecord, error) {
	from, to, err := s.bounds(f)
	if err != nil {
		return nil, err
	}
	recs, err := s.punches.List(repo.PunchFilter{UsuarioID: f.UsuarioID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]api.PunchRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, s.toAPI(r))
	}
	return out, nil
}

// ManualEntry inserts one record per filled time on req.Data and returns how many were created.
func (s *PunchService) ManualEntry(req api.ManualEntryRequest) (int, error) {
	if req.UsuarioID == 0 {
		return 0, invalid("Funcionário é obrigatório.")
	}
	if _, err := s.users.Get(req.UsuarioID); err != nil {
		return 0, err
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Data), s.loc)
	if err != nil {
		return 0, invalid("Data inválida, use AAAA-MM-DD.")
	}
	times := req.Times()
	var recs []models.PunchRecord
	for _, tipo := range api.PunchTypes {
		raw, ok := times[tipo]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		clock, err := parseClock(strings.TrimSpace(raw))
		if err != nil {
			return 0, invalid(fmt.Sprintf("Horário inválido para %s: %s", tipo, raw))
		}
		ts := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, s.loc)
		recs = append(recs, models.PunchRecord{
			UsuarioID: req.UsuarioID, Timestamp: ts.UTC(), TipoRegistro: string(tipo),
			Justificativa: strings.TrimSpace(req.Justificativa),
		})
	}
	if len(recs) == 0 {
		return 0, invalid("Informe ao menos um horário.")
	}
	if err := s.punches.CreateBatch(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func (s *PunchService) Update(id uint, req api.UpdateRecordRequest) (*api.PunchRecord, error) {
	p, err := s.punches.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(req.Timestamp) != "" {
		ts, err := s.parseTimestamp(strings.TrimSpace(req.Timestamp))
		if err != nil {
			return nil, invalid("Data/hora inválida.")
		}
		p.Timestamp = ts.UTC()
	}
	p.Justificativa = strings.TrimSpace(req.Justificativa)
	if err := s.punches.Save(p); err != nil {
		return nil, err
	}
	out := s.toAPI(*p)
	return &out, nil
}

func (s *PunchService) Delete(id uint) error {
	if err := s.punches.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PunchService) toAPI(r models.PunchRecord) api.PunchRecord {
	return api.PunchRecord{
		ID: r.ID, UsuarioID: r.UsuarioID, NomeCompleto: r.Usuario.NomeCompleto,
		Timestamp: r.Timestamp.In(s.loc), TipoRegistro: api.PunchType(r.TipoRegistro),
		Justificativa: r.Justificativa,
	}
}

func parseClock(v string) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", v)
}

func (s *PunchService) parseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, v, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}
