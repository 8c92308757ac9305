//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"encoding/csv"
	"fmt"
	"github.com/e-gun/LDAWorkshop/internal/lderr"
	"github.com/xuri/excelize/v2"
	"os"
	"path/filepath"
	"strings"
)

//
// METADATA SIDE-FILE
//

// Metadata - descriptive attributes keyed by document identifier; display only, never needed for inference
type Metadata struct {
	IDColumn string
	Columns  []string
	rows     map[string]map[string]string
}

// LoadMetadata - read a .xlsx, .csv or .tsv whose first row is a header and one column holds the identifiers
func LoadMetadata(path string, idcolumn string) (*Metadata, error) {
	const (
		MSG1 = "LoadMetadata() read %s rows from %s"
	)

	var table [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = readspreadsheet(path)
	case ".csv":
		table, err = readdelimited(path, ',')
	case ".tsv":
		table, err = readdelimited(path, '\t')
	default:
		return nil, lderr.Invalid("unsupported metadata file type: %s", path)
	}
	if err != nil {
		return nil, err
	}

	md, err := buildmetadata(table, idcolumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Msg.FYI(fmt.Sprintf(MSG1, Msg.Count(md.Len()), path))
	return md, nil
}

// Len - number of identified rows
func (md *Metadata) Len() int {
	return len(md.rows)
}

// Row - all the attributes for one document
func (md *Metadata) Row(id string) (map[string]string, bool) {
	r, ok := md.rows[id]
	if !ok {
		return nil, false
	}
	cp := make(map[string]string, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp, true
}

// Label - md.Row(id)[column], if there is one
func (md *Metadata) Label(id string, column string) (string, bool) {
	if md == nil {
		return "", false
	}
	r, ok := md.rows[id]
	if !ok {
		return "", false
	}
	v, ok := r[column]
	return v, ok && v != ""
}

func buildmetadata(table [][]string, idcolumn string) (*Metadata, error) {
	if len(table) == 0 {
		return nil, lderr.Invalid("metadata has no header row")
	}

	header := make([]string, len(table[0]))
	idx := -1
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] == idcolumn {
			idx = i
		}
	}
	if idx < 0 {
		return nil, lderr.Invalid("metadata has no %q column", idcolumn)
	}

	md := &Metadata{IDColumn: idcolumn, Columns: header, rows: make(map[string]map[string]string)}
	for _, row := range table[1:] {
		if idx >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idx])
		if id == "" {
			continue
		}
		r := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				r[h] = strings.TrimSpace(row[i])
			}
		}
		md.rows[id] = r
	}
	return md, nil
}

func readspreadsheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, lderr.Invalid("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

func readdelimited(path string, sep rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
