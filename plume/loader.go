package plume

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SurfaceDocument is the JSON export format for one realization's surface.
// Values are column-major (index = col*nrow + row); null entries mark
// missing cells and decode to NaN.
type SurfaceDocument struct {
	Ensemble    string     `json:"ensemble"`
	Attribute   string     `json:"attribute"` // file naming tag, see attrs.go
	Realization int        `json:"realization"`
	Grid        Grid       `json:"grid"`
	Values      []*float64 `json:"values"`
}

// Field converts the document's values into a ScalarField, mapping nulls
// to NaN.
func (d *SurfaceDocument) Field() (ScalarField, error) {
	if err := d.Grid.Validate(); err != nil {
		return ScalarField{}, err
	}
	if len(d.Values) != d.Grid.NCol*d.Grid.NRow {
		return ScalarField{}, fmt.Errorf("%w: %d values for a %dx%d grid",
			ErrShapeMismatch, len(d.Values), d.Grid.NCol, d.Grid.NRow)
	}

	field := NewScalarField(d.Grid)
	for i, v := range d.Values {
		if v == nil {
			field.Values[i] = math.NaN()
		} else {
			field.Values[i] = *v
		}
	}
	return field, nil
}

// LoadSurfaceFile reads and decodes one surface document from disk.
func LoadSurfaceFile(path string) (*SurfaceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("surface file not found: %s", path)
		}
		return nil, fmt.Errorf("reading surface file: %w", err)
	}

	var doc SurfaceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing surface JSON %s: %w", path, err)
	}
	return &doc, nil
}

// DirectorySource is a SurfaceSource backed by a directory of surface JSON
// exports. Documents are matched on ensemble and attribute naming tag;
// realizations without a matching file are silently excluded, so callers
// get exactly the fields that exist.
type DirectorySource struct {
	Dir string
}

// Surfaces implements SurfaceSource. Results are ordered by ascending
// realization number.
func (s DirectorySource) Surfaces(ensemble string, attribute MapAttribute, realizations []int) ([]ScalarField, error) {
	naming := string(attribute)
	if info, ok := attribute.Info(); ok && info.FileNaming != "" {
		naming = info.FileNaming
	}

	wanted := make(map[int]bool, len(realizations))
	for _, r := range realizations {
		wanted[r] = true
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading surface directory: %w", err)
	}

	byRealization := make(map[int]ScalarField)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		doc, err := LoadSurfaceFile(filepath.Join(s.Dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if doc.Ensemble != ensemble || doc.Attribute != naming || !wanted[doc.Realization] {
			continue
		}
		field, err := doc.Field()
		if err != nil {
			return nil, fmt.Errorf("surface %s: %w", entry.Name(), err)
		}
		byRealization[doc.Realization] = field
	}

	reals := make([]int, 0, len(byRealization))
	for r := range byRealization {
		reals = append(reals, r)
	}
	sort.Ints(reals)

	fields := make([]ScalarField, 0, len(reals))
	for _, r := range reals {
		fields = append(fields, byRealization[r])
	}
	return fields, nil
}
