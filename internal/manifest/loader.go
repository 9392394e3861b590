package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one row of a strip manifest.
type Entry struct {
	Image   string `json:"image"`
	Label   string `json:"label"`
	Caption string `json:"caption"`
}

// Load reads a CSV manifest with an "image" column and optional "label"
// and "caption" columns. Relative image paths resolve against the
// manifest's directory; URLs and data URIs are kept as is.
func Load(path string) ([]Entry, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	entries, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range entries {
		entries[i].Image = resolve(base, entries[i].Image)
	}
	return entries, nil
}

func Parse(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("manifest has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["image"]; !ok {
		return nil, fmt.Errorf("manifest header has no image column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Entry{}
	for n, row := range rows[1:] {
		e := Entry{
			Image:   get(row, "image"),
			Label:   get(row, "label"),
			Caption: get(row, "caption"),
		}
		if e.Image == "" {
			return nil, fmt.Errorf("row %d: empty image", n+2)
		}
		if e.Label == "" {
			e.Label = filepath.Base(e.Image)
		}
		out = append(out, e)
	}
	return out, nil
}

func resolve(base, ref string) string {
	if strings.Contains(ref, ":") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(base, ref)
}
