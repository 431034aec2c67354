package admin

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportFilename is the default name of a month's workbook.
func ReportFilename(ano, mes int) string { return fmt.Sprintf("relatorio_%04d_%02d.xlsx", ano, mes) }

// SaveReport writes data to out, or to the server's filename in the working directory.
func SaveReport(data []byte, serverName, out string, ano, mes int) (string, error) {
	if out == "" {
		out = filepath.Base(serverName)
		if serverName == "" || out == "." || out == string(filepath.Separator) {
			out = ReportFilename(ano, mes)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("salvar relatório: %w", err)
	}
	return out, nil
}
