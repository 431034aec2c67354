package services

import (
	"ponto/backend/app/report"
	"ponto/pkg/api"
)

type ReportService struct {
	punches *PunchService
	users   *UserService
}

func NewReportService(punches *PunchService, users *UserService) *ReportService {
	return &ReportService{punches: punches, users: users}
}

// Build renders the month's workbook, optionally for a single user, and its download name.
func (s *ReportService) Build(ano, mes int, usuarioID uint) ([]byte, string, error) {
	if usuarioID != 0 {
		if _, err := s.users.Get(usuarioID); err != nil {
			return nil, "", err
		}
	}
	records, err := s.punches.List(RecordFilter{UsuarioID: usuarioID, Ano: ano, Mes: mes})
	if err != nil {
		return nil, "", err
	}
	list, err := s.users.ListUsers()
	if err != nil {
		return nil, "", err
	}
	users := make(map[uint]api.User, len(list))
	for _, u := range list {
		users[u.ID] = u
	}
	data, err := report.Write(report.GroupDays(records, users, s.punches.Location()))
	if err != nil {
		return nil, "", err
	}
	return data, report.Filename(ano, mes), nil
}
