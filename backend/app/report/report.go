// Package report renders monthly attendance as an xlsx workbook.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"ponto/pkg/api"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Registros"

var header = []string{"Funcionário", "Usuário", "Data", "Entrada", "Saída almoço", "Volta almoço", "Saída", "Horas", "Justificativas"}

// Day is one user's punches on one calendar day.
type Day struct {
	UsuarioID      uint
	NomeCompleto   string
	Username       string
	Date           time.Time
	Punches        map[api.PunchType]time.Time
	Justificativas []string
}

// Worked sums the closed intervals of the day. Without a lunch pair it is saida minus entrada.
func (d Day) Worked() time.Duration {
	in, okIn := d.Punches[api.Entrada]
	out, okOut := d.Punches[api.Saida]
	lunchOut, okLO := d.Punches[api.SaidaAlmoco]
	lunchIn, okLI := d.Punches[api.VoltaAlmoco]

	var total time.Duration
	switch {
	case okLO && okLI:
		if okIn && lunchOut.After(in) {
			total += lunchOut.Sub(in)
		}
		if okOut && out.After(lunchIn) {
			total += out.Sub(lunchIn)
		}
	case okIn && okOut && out.After(in):
		total = out.Sub(in)
	case okIn && okLO && lunchOut.After(in):
		total = lunchOut.Sub(in)
	}
	return total
}

// GroupDays folds records into per-user, per-day rows ordered by name then date.
// Users maps usuario_id to username for the Usuário column.
func GroupDays(records []api.PunchRecord, users map[uint]api.User, loc *time.Location) []Day {
	type key struct {
		uid  uint
		date string
	}
	byKey := map[key]*Day{}
	for _, r := range records {
		ts := r.Timestamp.In(loc)
		k := key{uid: r.UsuarioID, date: ts.Format("2006-01-02")}
		d, ok := byKey[k]
		if !ok {
			u := users[r.UsuarioID]
			nome := r.NomeCompleto
			if nome == "" {
				nome = u.NomeCompleto
			}
			d = &Day{
				UsuarioID: r.UsuarioID, NomeCompleto: nome, Username: u.Username,
				Date:    time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc),
				Punches: map[api.PunchType]time.Time{},
			}
			byKey[k] = d
		}
		if prev, seen := d.Punches[r.TipoRegistro]; !seen || ts.Before(prev) {
			d.Punches[r.TipoRegistro] = ts
		}
		if j := strings.TrimSpace(r.Justificativa); j != "" {
			d.Justificativas = append(d.Justificativas, j)
		}
	}
	days := make([]Day, 0, len(byKey))
	for _, d := range byKey {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].NomeCompleto != days[j].NomeCompleto {
			return days[i].NomeCompleto < days[j].NomeCompleto
		}
		if days[i].UsuarioID != days[j].UsuarioID {
			return days[i].UsuarioID < days[j].UsuarioID
		}
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// Write renders days into a workbook and returns its bytes.
func Write(days []Day) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	var total time.Duration
	for i, d := range days {
		row := []interface{}{d.NomeCompleto, d.Username, d.Date.Format("02/01/2006")}
		for _, t := range api.PunchTypes {
			if ts, ok := d.Punches[t]; ok {
				row = append(row, ts.Format("15:04"))
			} else {
				row = append(row, "")
			}
		}
		worked := d.Worked()
		total += worked
		row = append(row, FormatHours(worked), strings.Join(d.Justificativas, "; "))
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(days) > 0 {
		cell, err := excelize.CoordinatesToCellName(7, len(days)+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{"Total", FormatHours(total)}); err != nil {
			return nil, fmt.Errorf("write total: %w", err)
		}
	}
	_ = f.SetColWidth(SheetName, "A", "A", 32)
	_ = f.SetColWidth(SheetName, "I", "I", 48)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatHours renders d as H:MM.
func FormatHours(d time.Duration) string {
	m := int(d.Round(time.Minute).Minutes())
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

func Filename(ano, mes int) string { return fmt.Sprintf("relatorio_%04d_%02d.xlsx", ano, mes) }
