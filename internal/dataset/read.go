/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/config"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naToken is what every missing cell is rewritten to before type inference;
// gota treats it as NaN for every series type.
const naToken = "NaN"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read opens path, parses it as delimited text with a header row and infers
// column types. The file is closed before Read returns. Every error returned
// is a *LoadError.
func Read(path string, cfg config.LoaderConfig) (*Table, []Warning, error) {
	if path == "" {
		return nil, nil, &LoadError{Kind: InputAbsent, Msg: "no file path provided"}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &LoadError{Kind: FileNotFound, Path: path, Msg: "failed to open file", Err: err}
		}
		return nil, nil, &LoadError{Kind: ReadFailure, Path: path, Msg: "failed to open file", Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, &LoadError{Kind: ReadFailure, Path: path, Msg: "failed to read file", Err: err}
	}
	return Parse(path, content, cfg)
}

// Parse builds a Table from file content. path is only used for labelling.
func Parse(path string, content []byte, cfg config.LoaderConfig) (*Table, []Warning, error) {
	if !utf8.Valid(content) {
		return nil, nil, &LoadError{Kind: EncodingFailure, Path: path, Msg: "content is not valid UTF-8"}
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	header, rows, err := readRecords(content, cfg.Delimiter)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
			return nil, nil, loadErr
		}
		return nil, nil, &LoadError{Kind: ParseFailure, Path: path, Msg: "failed to parse delimited data", Err: err}
	}
	header = normalizeHeader(header)

	naSet := make(map[string]bool, len(cfg.NAValues)+1)
	for _, v := range cfg.NAValues {
		naSet[v] = true
	}
	naSet[naToken] = true

	missing := make([][]bool, len(header))
	for c := range header {
		missing[c] = make([]bool, len(rows))
	}
	for r, row := range rows {
		for c := range header {
			if naSet[row[c]] {
				missing[c][r] = true
				row[c] = naToken
			}
		}
	}

	if len(rows) == 0 {
		columns := make([]*Column, len(header))
		for c, name := range header {
			columns[c] = NewTextColumn(name, []string{})
		}
		table, err := NewTable(path, 0, columns...)
		if err != nil {
			return nil, nil, &LoadError{Kind: ParseFailure, Path: path, Msg: "failed to build table", Err: err}
		}
		return table, nil, nil
	}

	df := dataframe.LoadRecords(
		append([][]string{header}, inferenceRecords(rows)...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{naToken}),
	)
	if df.Err != nil {
		return nil, nil, &LoadError{Kind: ParseFailure, Path: path, Msg: "failed to infer column types", Err: df.Err}
	}

	columns := make([]*Column, len(header))
	var mixed []string
	for c, name := range header {
		columns[c] = buildColumn(name, df.Col(name), columnValues(rows, c), missing[c])
		if columns[c].Kind == KindText && hasMixedTypes(columns[c]) {
			mixed = append(mixed, name)
		}
	}

	table, err := NewTable(path, len(rows), columns...)
	if err != nil {
		return nil, nil, &LoadError{Kind: ParseFailure, Path: path, Msg: "failed to build table", Err: err}
	}

	var warnings []Warning
	if len(mixed) > 0 {
		warnings = append(warnings, Warning{Kind: MixedTypeWarning, Columns: mixed})
	}
	return table, warnings, nil
}

// readRecords splits content into the header and data rows. Blank lines are
// skipped, short rows are padded with missing cells and long rows are a
// parse failure. A quote inside an unquoted field is kept as text.
func readRecords(content []byte, delimiter rune) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if isBlankRecord(record) {
			continue
		}
		if header == nil {
			header = record
			continue
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, &LoadError{
				Kind: ParseFailure,
				Msg:  fmt.Sprintf("expected %d fields in line %d, saw %d", len(header), line, len(record)),
			}
		}
		for len(record) < len(header) {
			record = append(record, naToken)
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, nil, &LoadError{Kind: EmptyFile, Msg: "no columns to parse from file"}
	}
	return header, rows, nil
}

func isBlankRecord(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

// normalizeHeader names empty headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2" and so on.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		seen[candidate] = true
		names[i] = candidate
	}
	return names
}

// inferenceRecords returns a copy of rows prepared for gota's type
// detection. Numbers lose surrounding whitespace and boolean spellings are
// lowercased; every other cell is passed through unchanged.
func inferenceRecords(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		norm := make([]string, len(row))
		for c, v := range row {
			norm[c] = normalizeCell(v)
		}
		out[r] = norm
	}
	return out
}

func normalizeCell(v string) string {
	if v == naToken {
		return v
	}
	trimmed := strings.TrimSpace(v)
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return trimmed
	}
	if b, ok := parseBool(trimmed); ok {
		return strconv.FormatBool(b)
	}
	return v
}

func parseBool(v string) (bool, bool) {
	switch v {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

func columnValues(rows [][]string, c int) []string {
	values := make([]string, len(rows))
	for r, row := range rows {
		values[r] = row[c]
	}
	return values
}

// buildColumn converts an inferred gota series into a Column, reading text
// and boolean cells from raw. Integer columns holding missing entries are
// widened to float and boolean ones to text, as are columns mixing boolean
// and numeric cells. A column with no values at all is float.
func buildColumn(name string, s series.Series, raw []string, missing []bool) *Column {
	anyMissing, allMissing := false, true
	for _, m := range missing {
		anyMissing = anyMissing || m
		allMissing = allMissing && m
	}
	if allMissing {
		return &Column{Name: name, Kind: KindFloat, Numbers: make([]float64, len(missing)), Missing: missing}
	}

	switch s.Type() {
	case series.Int, series.Float:
		kind := KindFloat
		if s.Type() == series.Int && !anyMissing {
			kind = KindInteger
		}
		values := s.Float()
		for i := range values {
			if missing[i] {
				values[i] = 0
			}
		}
		return &Column{Name: name, Kind: kind, Numbers: values, Missing: missing}
	case series.Bool:
		if anyMissing {
			return textColumn(name, raw, missing)
		}
		values := make([]bool, len(raw))
		for i, r := range raw {
			b, ok := parseBool(strings.TrimSpace(r))
			if !ok {
				return textColumn(name, raw, missing)
			}
			values[i] = b
		}
		return &Column{Name: name, Kind: KindBoolean, Bools: values, Missing: missing}
	default:
		return textColumn(name, raw, missing)
	}
}

func textColumn(name string, raw []string, missing []bool) *Column {
	texts := make([]string, len(raw))
	for i, r := range raw {
		if !missing[i] {
			texts[i] = r
		}
	}
	return &Column{Name: name, Kind: KindText, Texts: texts, Missing: missing}
}

// hasMixedTypes reports whether a text column holds both values that parse
// as numbers and values that do not.
func hasMixedTypes(col *Column) bool {
	var numeric, other bool
	for _, v := range col.PresentTexts() {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			numeric = true
		} else {
			other = true
		}
		if numeric && other {
			return true
		}
	}
	return false
}
