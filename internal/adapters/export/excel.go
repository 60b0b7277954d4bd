// Package export renders statistics into xlsx workbooks for download.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Litjoaco/inacap/internal/domain"
)

type excelExporter struct{}

// NewExcelExporter returns a ReportExporter backed by excelize.
func NewExcelExporter() domain.ReportExporter {
	return &excelExporter{}
}

func (e *excelExporter) EventReport(stats *domain.EventStats, attendees []*domain.User, campuses, programs []domain.CategoryCount) (*domain.ExportedReport, error) {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, headerStyle, err := styles(f)
	if err != nil {
		return nil, err
	}

	const summary = "Resumen Evento"
	f.SetSheetName("Sheet1", summary)
	f.SetCellValue(summary, "A1", fmt.Sprintf("Estadísticas del Evento: %s", stats.Event.Title))
	f.SetCellStyle(summary, "A1", "A1", titleStyle)
	writeSummaryRows(f, summary, headerStyle, []summaryRow{
		{"Interesados", stats.Interested},
		{"Asistentes", stats.Attendees},
		{"Satisfacción Promedio", formatAverage(stats.AverageScore)},
	})

	const roster = "Lista de Asistentes"
	f.NewSheet(roster)
	writeHeader(f, roster, headerStyle, "Nombre", "Apellido", "Email", "Rol", "Sede", "Carrera")
	for i, u := range attendees {
		row := i + 2
		f.SetCellValue(roster, cell("A", row), u.Name)
		f.SetCellValue(roster, cell("B", row), u.LastName)
		f.SetCellValue(roster, cell("C", row), u.Email)
		f.SetCellValue(roster, cell("D", row), u.AffiliationDisplay())
		f.SetCellValue(roster, cell("E", row), u.CampusDisplay())
		f.SetCellValue(roster, cell("F", row), u.ProgramDisplay())
	}

	writeCategorySheet(f, "Roles por Evento", headerStyle, "Rol", stats.TopAffiliations)
	writeCategorySheet(f, "Sedes por Evento", headerStyle, "Sede", campuses)
	writeCategorySheet(f, "Carreras por Evento", headerStyle, "Carrera", programs)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render event workbook: %w", err)
	}
	slug := strings.ToLower(strings.ReplaceAll(stats.Event.Title, " ", "_"))
	return &domain.ExportedReport{
		Filename: fmt.Sprintf("estadisticas_%s_%s.xlsx", slug, stats.Event.StartsAt.Format("20060102")),
		Content:  buf.Bytes(),
	}, nil
}

func (e *excelExporter) GlobalReport(stats *domain.GlobalStats, scores []domain.CategoryCount) (*domain.ExportedReport, error) {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, headerStyle, err := styles(f)
	if err != nil {
		return nil, err
	}

	const summary = "Resumen General"
	f.SetSheetName("Sheet1", summary)
	f.SetCellValue(summary, "A1", "Estadísticas Generales")
	f.SetCellStyle(summary, "A1", "A1", titleStyle)
	writeSummaryRows(f, summary, headerStyle, []summaryRow{
		{"Usuarios Totales", stats.TotalUsers},
		{"Eventos Totales", stats.TotalEvents},
		{"Asistencias Totales", stats.TotalAttendances},
		{"Satisfacción Promedio", formatAverage(stats.AverageScore)},
	})

	const perEvent = "Asistencia por Evento"
	f.NewSheet(perEvent)
	writeHeader(f, perEvent, headerStyle, "Evento", "Fecha", "Nº de Asistentes")
	for i, ea := range stats.RecentAttendance {
		row := i + 2
		f.SetCellValue(perEvent, cell("A", row), ea.Event.Title)
		f.SetCellValue(perEvent, cell("B", row), ea.Event.StartsAt.Format("02-01-2006"))
		f.SetCellValue(perEvent, cell("C", row), ea.Attendees)
	}

	writeCategorySheet(f, "Usuarios por Rol", headerStyle, "Rol", stats.TopAffiliations)

	const satisfaction = "Distribución de Satisfacción"
	f.NewSheet(satisfaction)
	writeHeader(f, satisfaction, headerStyle, "Puntuación (Estrellas)", "Cantidad de Votos")
	for i, s := range scores {
		row := i + 2
		f.SetCellValue(satisfaction, cell("A", row), fmt.Sprintf("%s Estrellas", s.Label))
		f.SetCellValue(satisfaction, cell("B", row), s.Count)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render global workbook: %w", err)
	}
	return &domain.ExportedReport{
		Filename: "estadisticas_inacap.xlsx",
		Content:  buf.Bytes(),
	}, nil
}

type summaryRow struct {
	Label string
	Value any
}

func styles(f *excelize.File) (title, header int, err error) {
	title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create style: %w", err)
	}
	header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create style: %w", err)
	}
	return title, header, nil
}

// writeSummaryRows lays label/value pairs starting at row 3, matching the
// layout admins already know from the previous reporting tool.
func writeSummaryRows(f *excelize.File, sheet string, headerStyle int, rows []summaryRow) {
	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheet, cell("A", row), r.Label)
		f.SetCellValue(sheet, cell("B", row), r.Value)
		f.SetCellStyle(sheet, cell("A", row), cell("A", row), headerStyle)
	}
	f.SetColWidth(sheet, "A", "B", 28)
}

func writeHeader(f *excelize.File, sheet string, headerStyle int, cols ...string) {
	for i, c := range cols {
		col := string(rune('A' + i))
		f.SetCellValue(sheet, cell(col, 1), c)
	}
	last := string(rune('A' + len(cols) - 1))
	f.SetCellStyle(sheet, "A1", cell(last, 1), headerStyle)
	f.SetColWidth(sheet, "A", last, 24)
}

func writeCategorySheet(f *excelize.File, sheet string, headerStyle int, label string, counts []domain.CategoryCount) {
	f.NewSheet(sheet)
	writeHeader(f, sheet, headerStyle, label, "Cantidad de Usuarios")
	for i, c := range counts {
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), c.Label)
		f.SetCellValue(sheet, cell("B", row), c.Count)
	}
}

// formatAverage renders a 1-5 satisfaction average, or "N/A" when no survey
// responses exist yet.
func formatAverage(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f / 5", *avg)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
