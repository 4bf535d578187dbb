// internal/fixtures/fixtures.go
package fixtures

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anarefin/prayer-time/internal/adapters/out/gcs"
	"github.com/anarefin/prayer-time/internal/application/seeding"
	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/domain/geo"
	"github.com/anarefin/prayer-time/internal/domain/mosque"
	"github.com/anarefin/prayer-time/internal/domain/user"
)

//go:embed data/*.json
var embedded embed.FS

// Bundled fixture file names.
const (
	DivisionsFile  = "divisions.json"
	DistrictsFile  = "districts.json"
	UpazilasFile   = "upazilas.json"
	ThanasFile     = "dhaka_thanas.json"
	MosquesFile    = "dhaka_mosques.json"
	UsersFile      = "users.json"
	SampleDataFile = "sample_data.json"
)

// RemoteSource reads fixtures stored outside the binary (Cloud Storage).
type RemoteSource interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// Loader reads bundled fixtures, or an override per file when one is configured.
// An override is a local path or a gs:// URI.
type Loader struct {
	Overrides map[string]string
	Remote    RemoteSource
	ReadFile  func(string) ([]byte, error)
}

func NewLoader(overrides map[string]string, remote RemoteSource) *Loader {
	return &Loader{Overrides: overrides, Remote: remote, ReadFile: os.ReadFile}
}

// Raw returns the bytes of file and a label naming where they came from.
func (l *Loader) Raw(ctx context.Context, file string) ([]byte, string, error) {
	src := ""
	if l != nil && l.Overrides != nil {
		src = strings.TrimSpace(l.Overrides[file])
	}

	switch {
	case src == "":
		b, err := embedded.ReadFile("data/" + file)
		if err != nil {
			return nil, file, fmt.Errorf("read bundled fixture %s: %w", file, err)
		}
		return b, file, nil

	case gcs.IsObjectURI(src):
		if l.Remote == nil {
			return nil, src, fmt.Errorf("fixture %s: no storage client for %s", file, src)
		}
		b, err := l.Remote.Read(ctx, src)
		if err != nil {
			return nil, src, err
		}
		return b, src, nil

	default:
		read := l.ReadFile
		if read == nil {
			read = os.ReadFile
		}
		b, err := read(src)
		if err != nil {
			return nil, src, fmt.Errorf("read fixture %s: %w", src, err)
		}
		return b, src, nil
	}
}

// exportEntry is one element of a phpMyAdmin JSON export.
type exportEntry struct {
	Type string          `json:"type"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// ErrTableNotFound is returned when an export has no table of the requested name.
var ErrTableNotFound = errors.New("fixtures: table not found")

// LoadTable decodes the rows of table name from a phpMyAdmin JSON export.
func LoadTable[T any](raw []byte, file, name string) ([]T, error) {
	var entries []exportEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	for _, e := range entries {
		if e.Type != "table" || e.Name != name {
			continue
		}
		if len(e.Data) == 0 || string(e.Data) == "null" {
			break
		}
		var rows []T
		if err := json.Unmarshal(e.Data, &rows); err != nil {
			return nil, fmt.Errorf("parse table '%s' in %s: %w", name, file, err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: could not find table '%s' in %s", ErrTableNotFound, name, file)
}

func table[T any](ctx context.Context, l *Loader, file, name string) ([]T, error) {
	raw, label, err := l.Raw(ctx, file)
	if err != nil {
		return nil, err
	}
	return LoadTable[T](raw, label, name)
}

func plain[T any](ctx context.Context, l *Loader, file string) (T, error) {
	var out T
	raw, label, err := l.Raw(ctx, file)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("parse %s: %w", label, err)
	}
	return out, nil
}

// Geography loads divisions, districts, upazilas and the Dhaka thana list.
func (l *Loader) Geography(ctx context.Context) (seeding.GeographySource, error) {
	var (
		src seeding.GeographySource
		err error
	)
	if src.Divisions, err = table[geo.DivisionRow](ctx, l, DivisionsFile, "divisions"); err != nil {
		return src, err
	}
	if src.Districts, err = table[geo.DistrictRow](ctx, l, DistrictsFile, "districts"); err != nil {
		return src, err
	}
	if src.Upazilas, err = table[geo.UpazilaRow](ctx, l, UpazilasFile, "upazilas"); err != nil {
		return src, err
	}
	if src.Thanas, err = plain[[]geo.Thana](ctx, l, ThanasFile); err != nil {
		return src, err
	}
	src.ThanaDistrict = seeding.DefaultThanaDistrict
	return src, nil
}

func (l *Loader) Mosques(ctx context.Context) ([]mosque.FixtureMosque, error) {
	return plain[[]mosque.FixtureMosque](ctx, l, MosquesFile)
}

func (l *Loader) Accounts(ctx context.Context) ([]user.Account, error) {
	return plain[[]user.Account](ctx, l, UsersFile)
}

// SampleData decodes the sample document set. Integral numbers are kept as
// int64 so they are stored as integers, like the geography seeder's fields.
func (l *Loader) SampleData(ctx context.Context) (seeding.SampleData, error) {
	var out seeding.SampleData
	raw, label, err := l.Raw(ctx, SampleDataFile)
	if err != nil {
		return out, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("parse %s: %w", label, err)
	}
	for _, docs := range []map[string]common.Fields{out.Areas, out.Mosques, out.PrayerTimes} {
		for _, f := range docs {
			normalizeNumbers(f)
		}
	}
	return out, nil
}

// normalizeNumbers replaces json.Number values in place: int64 when integral,
// float64 otherwise.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, x := range t {
			t[k] = normalizeNumbers(x)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = normalizeNumbers(x)
		}
		return t
	default:
		return v
	}
}
