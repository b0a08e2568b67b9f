package schema

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLayoutFile is the embedded FEC individual contributions layout.
const DefaultLayoutFile = "layouts/fec_itcont.yaml"

//go:embed layouts/*.yaml
var layoutFiles embed.FS

// Role marks a positional field the parser depends on.
type Role string

const (
	RoleRecipient Role = "recipient"
	RoleZip       Role = "zip"
	RoleDate      Role = "date"
	RoleAmount    Role = "amount"
	RoleOtherID   Role = "other_id"
)

var requiredRoles = []Role{RoleRecipient, RoleZip, RoleDate, RoleAmount, RoleOtherID}

// Field is one positional column.
type Field struct {
	Name  string
	Index int
	Role  Role // empty for columns the parser ignores
}

// Layout describes the positional fields of one input line.
// Layouts are loaded once at startup and are read-only afterwards.
type Layout struct {
	Name        string
	Fields      []Field
	Fingerprint string // SHA-256 of the raw YAML

	roles map[Role]int
}

// rawLayout is the on-disk YAML shape.
type rawLayout struct {
	Name   string     `yaml:"name"`
	Fields []rawField `yaml:"fields"`
}

type rawField struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Load reads the layout at path. An empty path returns the embedded default.
func Load(path string) (*Layout, error) {
	if strings.TrimSpace(path) == "" {
		data, err := layoutFiles.ReadFile(DefaultLayoutFile)
		if err != nil {
			return nil, fmt.Errorf("reading embedded layout: %w", err)
		}
		return Parse(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file %s: %w", path, err)
	}
	layout, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return layout, nil
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var raw rawLayout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("layout name must not be empty")
	}
	if len(raw.Fields) == 0 {
		return nil, fmt.Errorf("layout %q: no fields", raw.Name)
	}

	l := &Layout{
		Name:   raw.Name,
		Fields: make([]Field, 0, len(raw.Fields)),
		roles:  make(map[Role]int, len(requiredRoles)),
	}
	names := make(map[string]struct{}, len(raw.Fields))
	for i, f := range raw.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("layout %q: field %d has no name", raw.Name, i)
		}
		if _, dup := names[f.Name]; dup {
			return nil, fmt.Errorf("layout %q: duplicate field name %q", raw.Name, f.Name)
		}
		names[f.Name] = struct{}{}

		role := Role(f.Role)
		if role != "" {
			if !knownRole(role) {
				return nil, fmt.Errorf("layout %q: field %q has unknown role %q", raw.Name, f.Name, f.Role)
			}
			if prev, dup := l.roles[role]; dup {
				return nil, fmt.Errorf("layout %q: role %q assigned to both %q and %q", raw.Name, role, raw.Fields[prev].Name, f.Name)
			}
			l.roles[role] = i
		}
		l.Fields = append(l.Fields, Field{Name: f.Name, Index: i, Role: role})
	}

	for _, role := range requiredRoles {
		if _, ok := l.roles[role]; !ok {
			return nil, fmt.Errorf("layout %q: missing field with role %q", raw.Name, role)
		}
	}

	sum := sha256.Sum256(data)
	l.Fingerprint = hex.EncodeToString(sum[:])
	return l, nil
}

// FieldCount is the exact number of fields a well-formed line has.
func (l *Layout) FieldCount() int {
	return len(l.Fields)
}

// Index returns the position of the field carrying role.
func (l *Layout) Index(role Role) int {
	return l.roles[role]
}

// FieldName returns the column name for role.
func (l *Layout) FieldName(role Role) string {
	return l.Fields[l.roles[role]].Name
}

func knownRole(r Role) bool {
	for _, known := range requiredRoles {
		if r == known {
			return true
		}
	}
	return false
}
