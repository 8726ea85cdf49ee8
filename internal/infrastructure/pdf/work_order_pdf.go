// Package pdf genera la orden de trabajo imprimible de un registro de mantenimiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización        │  N° Orden + Estado + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: Nombre / Categoría / Horómetro                     │
//	│  ORIGEN: Fuente + inspección (si existe)                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRABAJO: Orden / Repuestos / Mano de obra / Notas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CIERRE: Responsable / Costo / Horas / Completado            │
//	│  QR con el id del registro                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/pkg/textutil"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 196, Green: 98, Blue: 16}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.WorkOrderPDFGenerator = (*WorkOrderGenerator)(nil)

// WorkOrderGenerator implementa ports.WorkOrderPDFGenerator usando Maroto v2.
type WorkOrderGenerator struct{}

func NewWorkOrderGenerator() *WorkOrderGenerator { return &WorkOrderGenerator{} }

// Generate arma el documento y devuelve sus bytes.
func (g *WorkOrderGenerator) Generate(doc ports.WorkOrderDocument) ([]byte, error) {
	if doc.Record == nil || doc.Equipment == nil {
		return nil, fmt.Errorf("pdf: orden de trabajo incompleta")
	}
	orgName := "-"
	if doc.Organization != nil {
		orgName = nonEmpty(doc.Organization.Name, "-")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo", true).
		WithAuthor(orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(orgName, doc.Record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipmentRow(doc.Equipment))
	m.AddRows(sourceRow(doc.Record, doc.Inspection))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range workRows(doc.Record) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(closingRow(doc.Record))
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(doc.Record.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Registro "+doc.Record.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Firma del técnico: ______________________", props.Text{Size: 9, Top: 24, Left: 3}),
		),
	))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(orgName string, rec *entity.MaintenanceRecord) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(orgName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Mantenimiento de flota", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(statusLabel(rec.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Creada: "+rec.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func equipmentRow(eq *entity.Equipment) core.Row {
	hours := "-"
	if eq.TotalHoursUsed != nil {
		hours = fmt.Sprintf("%.1f h", *eq.TotalHoursUsed)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(eq.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Categoría: %s   |   Horómetro: %s",
				categoryLabel(eq.Category), hours,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func sourceRow(rec *entity.MaintenanceRecord, insp *entity.Inspection) core.Row {
	detail := sourceLabel(rec.Source)
	if insp != nil {
		detail += fmt.Sprintf("   |   Inspección %s del %s (condición: %s)",
			insp.Type, insp.InspectedAt.Format("02/01/2006"), insp.OverallCondition)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ORIGEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// workRows: una fila por bloque de texto; los bloques vacíos se omiten salvo la orden.
func workRows(rec *entity.MaintenanceRecord) []core.Row {
	block := func(label, body string) core.Row {
		return row.New(14).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(body, props.Text{Size: 9, Top: 6}),
		))
	}
	rows := []core.Row{block("TRABAJO A REALIZAR", rec.WorkOrder)}
	if rec.PartsUsed != "" {
		rows = append(rows, block("REPUESTOS", rec.PartsUsed))
	}
	if rec.LaborDescription != "" {
		rows = append(rows, block("MANO DE OBRA", rec.LaborDescription))
	}
	if rec.Notes != "" {
		rows = append(rows, block("NOTAS", rec.Notes))
	}
	return rows
}

func closingRow(rec *entity.MaintenanceRecord) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Left, Left: 1})
	}

	cost := "-"
	if rec.Cost != nil {
		cost = "$" + formatMoney(rec.Cost.StringFixed(0))
	}
	hours := "-"
	if rec.HoursAtService != nil {
		hours = fmt.Sprintf("%.1f h", *rec.HoursAtService)
	}
	completed := "-"
	if rec.CompletedAt != nil {
		completed = rec.CompletedAt.Format("02/01/2006 15:04")
	}

	return row.New(26).Add(
		col.New(3).Add(
			label("Responsable:"),
			label("Costo:"),
			label("Horas al servicio:"),
			label("Completado:"),
		),
		col.New(9).Add(
			value(nonEmpty(rec.AssignedTo, "-")),
			value(cost),
			value(hours),
			value(completed),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s entity.MaintenanceStatus) string {
	switch s {
	case entity.MaintenancePending:
		return "PENDIENTE"
	case entity.MaintenanceInProgress:
		return "EN PROGRESO"
	case entity.MaintenanceCompleted:
		return "COMPLETADA"
	}
	return strings.ToUpper(string(s))
}

func sourceLabel(s entity.MaintenanceSource) string {
	switch s {
	case entity.SourceInspectionFlagged:
		return "Marcado en inspección"
	case entity.SourcePreventiveTime:
		return "Preventivo por tiempo"
	case entity.SourcePreventiveHours:
		return "Preventivo por horas"
	}
	return string(s)
}

// categoryLabel: "material_handling" → "Material Handling".
func categoryLabel(c entity.EquipmentCategory) string {
	return textutil.Title(strings.ReplaceAll(string(c), "_", " "))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
