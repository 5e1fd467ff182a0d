// Package importer reads zone layouts from external files: CSV and
// Excel tables of rectangles, and DXF drawings. It supports automatic
// delimiter detection, flexible column mapping, and case-insensitive
// header recognition. Imported layouts are normalized and validated
// before the engine ever sees them.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mjanssen/zonegrid/internal/model"
)

// ImportResult holds the outcome of an import operation.
type ImportResult struct {
	Schemas  []model.Schema
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID     int
	X      int
	Y      int
	Width  int
	Height int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"id":     {"id", "name", "zone", "label"},
	"x":      {"x", "left", "x1"},
	"y":      {"y", "top", "y1"},
	"width":  {"width", "w", "dx"},
	"height": {"height", "h", "dy"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe; the delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}
	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases. Returns the
// mapping and true if a header was detected, or a positional mapping
// (id, x, y, width, height) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, X: -1, Y: -1, Width: -1, Height: -1}

	isHeader := false
	assign := map[string]*int{
		"id": &mapping.ID, "x": &mapping.X, "y": &mapping.Y,
		"width": &mapping.Width, "height": &mapping.Height,
	}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *assign[role] == -1 {
					isHeader = true
					*assign[role] = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: 0, X: 1, Y: 2, Width: 3, Height: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a schema from a row using the given column mapping.
// Returns the schema and an error message (empty on success).
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Schema, string) {
	fields := []struct {
		name string
		idx  int
	}{
		{"x", mapping.X},
		{"y", mapping.Y},
		{"width", mapping.Width},
		{"height", mapping.Height},
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		cell := getCell(row, f.idx)
		if cell == "" {
			return model.Schema{}, fmt.Sprintf("%s: missing %s value", rowLabel, f.name)
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.Schema{}, fmt.Sprintf("%s: invalid %s %q", rowLabel, f.name, cell)
		}
		values[i] = v
	}
	if values[2] <= 0 || values[3] <= 0 {
		return model.Schema{}, fmt.Sprintf("%s: width and height must be positive", rowLabel)
	}

	schema := model.Schema{
		ID:     getCell(row, mapping.ID),
		X:      values[0],
		Y:      values[1],
		Width:  values[2],
		Height: values[3],
	}
	return model.NewSchemaFrom(schema), ""
}

// isEmptyRow reports whether a row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports zone schemas from a CSV file, detecting the
// delimiter and mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSVData(bytes.NewReader(data), delimiter, result.Warnings)
}

// ImportCSVFromReader imports zone schemas from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSVData(reader, delimiter, nil)
}

func importCSVData(reader io.Reader, delimiter rune, warnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports zone schemas from the first sheet of an Excel
// file, auto-detecting the column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import path for CSV and Excel data. After
// parsing, pixel-valued layouts are normalized against their combined
// bounding box so the result is always a normalized rectangle list.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		missing := []string{}
		for _, req := range []struct {
			name string
			idx  int
		}{{"X", mapping.X}, {"Y", mapping.Y}, {"Width", mapping.Width}, {"Height", mapping.Height}} {
			if req.idx == -1 {
				missing = append(missing, req.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		schema, errMsg := parseRow(rows[i], mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Schemas = append(result.Schemas, schema)
	}

	if len(result.Schemas) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No zones found")
	}
	result.Schemas = normalizeImported(result.Schemas, &result)
	return result
}

// normalizeImported converts a pixel-valued layout to normalized form
// against its combined bounding box. Already-normalized layouts pass
// through unchanged.
func normalizeImported(schemas []model.Schema, result *ImportResult) []model.Schema {
	if len(schemas) == 0 {
		return schemas
	}
	allNormal := true
	for _, s := range schemas {
		if !s.IsNormal() {
			allNormal = false
			break
		}
	}
	if allNormal {
		return schemas
	}

	var maxX, maxY float64
	minX, minY := schemas[0].X, schemas[0].Y
	for _, s := range schemas {
		if s.X < minX {
			minX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.X+s.Width > maxX {
			maxX = s.X + s.Width
		}
		if s.Y+s.Height > maxY {
			maxY = s.Y + s.Height
		}
	}
	ref := model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}

	out := make([]model.Schema, 0, len(schemas))
	for _, s := range schemas {
		n, err := s.Normalized(ref)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		out = append(out, n)
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("Normalized pixel layout against %.0fx%.0f bounding box", ref.Width, ref.Height))
	return out
}
