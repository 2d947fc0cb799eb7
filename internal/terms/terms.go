package terms

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// Table maps a surface form to its replacement or explanation. It has no
// mutation API; the zero value is an empty table.
type Table struct {
	entries map[string]string
}

func NewTable(entries map[string]string) Table {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return Table{entries: copied}
}

func (t Table) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Lookup tries the matched casing first and falls back to the lowercase key.
func (t Table) Lookup(surface string) (string, bool) {
	if v, ok := t.entries[surface]; ok {
		return v, true
	}
	v, ok := t.entries[strings.ToLower(surface)]
	return v, ok
}

func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (t Table) Len() int {
	return len(t.entries)
}

type Rephrasing struct {
	Phrase      string `yaml:"phrase"`
	Replacement string `yaml:"replacement"`
}

// Set bundles every table the analyser and rewriters consult.
type Set struct {
	Contractions Table
	Informal     Table
	Connectors   []string
	Rephrasings  []Rephrasing
}

type rawSet struct {
	Contractions map[string]string `yaml:"contractions"`
	Informal     map[string]string `yaml:"informal"`
	Connectors   []string          `yaml:"connectors"`
	Rephrasings  []Rephrasing      `yaml:"rephrasings"`
}

var defaultSet = mustLoad(tablesYAML)

// Default returns the built-in UK academic tables.
func Default() Set {
	return defaultSet.clone()
}

func Load(raw []byte) (Set, error) {
	var rs rawSet
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return Set{}, fmt.Errorf("decode term tables: %w", err)
	}
	if len(rs.Contractions) == 0 {
		return Set{}, fmt.Errorf("term tables: contractions table is empty")
	}
	if len(rs.Informal) == 0 {
		return Set{}, fmt.Errorf("term tables: informal table is empty")
	}
	if len(rs.Connectors) == 0 {
		return Set{}, fmt.Errorf("term tables: connector list is empty")
	}

	contractions := make(map[string]string, len(rs.Contractions))
	for k, v := range rs.Contractions {
		k = strings.TrimSpace(k)
		if k == "" {
			return Set{}, fmt.Errorf("term tables: blank contraction key")
		}
		contractions[k] = v
	}

	informal := make(map[string]string, len(rs.Informal))
	for k, v := range rs.Informal {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return Set{}, fmt.Errorf("term tables: blank informal key")
		}
		if _, dup := informal[k]; dup {
			return Set{}, fmt.Errorf("term tables: informal key %q collides after case folding", k)
		}
		informal[k] = v
	}

	for _, r := range rs.Rephrasings {
		if strings.TrimSpace(r.Phrase) == "" {
			return Set{}, fmt.Errorf("term tables: blank rephrasing phrase")
		}
	}

	return Set{
		Contractions: Table{entries: contractions},
		Informal:     Table{entries: informal},
		Connectors:   slices.Clone(rs.Connectors),
		Rephrasings:  slices.Clone(rs.Rephrasings),
	}, nil
}

// LoadFile reads a YAML table file shaped like the embedded defaults.
func LoadFile(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read term tables: %w", err)
	}
	return Load(raw)
}

func mustLoad(raw []byte) Set {
	s, err := Load(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set) clone() Set {
	return Set{
		Contractions: s.Contractions,
		Informal:     s.Informal,
		Connectors:   slices.Clone(s.Connectors),
		Rephrasings:  slices.Clone(s.Rephrasings),
	}
}
