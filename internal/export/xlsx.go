// Package export writes the materiel listing as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rezagth/gestion-installations/i18n"
	"github.com/rezagth/gestion-installations/internal/models"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an .xlsx file.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headerCodes = []string{
	"materiel.brand", "materiel.model", "materiel.serial", "materiel.type", "materiel.installed_on",
	"installation.name", "installation.client", "installation.boutique",
}

// Headers returns the translated column titles.
func Headers(lang string) []any {
	out := make([]any, 0, len(headerCodes))
	for _, code := range headerCodes {
		out = append(out, i18n.T(lang, code))
	}
	return out
}

func row(m models.Materiel) []any {
	var nom, client, boutique string
	if m.Installation != nil {
		nom, client, boutique = m.Installation.Nom, m.Installation.Client, m.Installation.Boutique
	}
	return []any{
		m.Marque, m.Modele, m.NumeroSerie, m.TypeMateriel, models.FormatDate(m.DateInstallation),
		nom, client, boutique,
	}
}

// Workbook builds a single-sheet workbook with a bold header row and one row per materiel.
func Workbook(items []models.Materiel, lang string) (*excelize.File, error) {
	return workbook(items, lang, i18n.T(lang, "export.sheet"))
}

func workbook(items []models.Materiel, lang, sheet string) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headers := Headers(lang)
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}
	for i, m := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row(m)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "D", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "E", "E", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "F", lastCol, 25); err != nil {
		return nil, err
	}
	return f, nil
}

// Write streams the workbook of items to w.
func Write(w io.Writer, items []models.Materiel, lang string) error {
	f, err := Workbook(items, lang)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Filename is the download name of an export made at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("materiels_%s.xlsx", now.Format("2006-01-02"))
}
