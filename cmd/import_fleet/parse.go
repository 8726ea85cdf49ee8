package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/pkg/textutil"
)

// FleetRow fila del CSV ya convertida; Line es la línea del archivo (1 = encabezado).
type FleetRow struct {
	Line    int
	Request dto.CreateEquipmentRequest
}

// ParseFleetCSV lee todo el archivo y falla en la primera fila inválida.
// Acepta coma o punto y coma como separador.
func ParseFleetCSV(r io.Reader) ([]FleetRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archivo vacío")
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[textutil.Normalize(h)] = i
	}
	for _, required := range []string{"name", "category"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var rows []FleetRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("name") == "" && get("category") == "" {
			continue
		}
		req, err := buildRequest(get)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, FleetRow{Line: line, Request: req})
	}
	return rows, nil
}

func buildRequest(get func(string) string) (dto.CreateEquipmentRequest, error) {
	req := dto.CreateEquipmentRequest{Name: get("name"), Notes: get("notes")}
	if req.Name == "" {
		return req, fmt.Errorf("name vacío")
	}
	cat, ok := ParseCategory(get("category"))
	if !ok {
		return req, fmt.Errorf("categoría desconocida %q", get("category"))
	}
	req.Category = string(cat)

	if v := get("asset_value"); v != "" {
		d, err := decimal.NewFromString(normalizeNumber(v))
		if err != nil {
			return req, fmt.Errorf("asset_value %q: %w", v, err)
		}
		req.AssetValue = d
	}
	if v := get("total_hours_used"); v != "" {
		h, err := strconv.ParseFloat(normalizeNumber(v), 64)
		if err != nil {
			return req, fmt.Errorf("total_hours_used %q: %w", v, err)
		}
		req.TotalHoursUsed = &h
	}
	if v := get("service_interval_days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("service_interval_days %q: %w", v, err)
		}
		req.ServiceIntervalDays = &d
	}
	if v := get("service_interval_hours"); v != "" {
		h, err := strconv.ParseFloat(normalizeNumber(v), 64)
		if err != nil {
			return req, fmt.Errorf("service_interval_hours %q: %w", v, err)
		}
		req.ServiceIntervalHours = &h
	}
	return req, nil
}

// ParseCategory acepta el código o el nombre legible, sin distinguir tildes ni mayúsculas.
func ParseCategory(s string) (entity.EquipmentCategory, bool) {
	key := strings.NewReplacer(" ", "_", "-", "_", "&", "_", "/", "_").Replace(textutil.Normalize(s))
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	cat := entity.EquipmentCategory(key)
	return cat, cat.Valid()
}

// normalizeNumber acepta "1.250.000,50" y "1,250,000.50".
func normalizeNumber(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ",", "")
}
