// Package project reads an edition's TOML manifest so CI and editors can
// run the validator without repeating six document paths on every call.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/briefedition/verweislint/core/check"
)

// Manifest names the edition documents relative to the manifest file.
type Manifest struct {
	Meta        string   `toml:"meta"`
	References  string   `toml:"references"`
	Briefe      string   `toml:"briefe"`
	Edits       string   `toml:"edits"`
	Traditions  string   `toml:"traditions"`
	Marginalien string   `toml:"marginalien"`
	Registers   []string `toml:"registers"`

	dir string
}

// Load reads and validates the manifest at path. All six fixed documents
// must be named; the register list may be empty.
func Load(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer file.Close()

	var m Manifest
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	var missing []string
	for _, field := range []struct {
		key, value string
	}{
		{"meta", m.Meta},
		{"references", m.References},
		{"briefe", m.Briefe},
		{"edits", m.Edits},
		{"traditions", m.Traditions},
		{"marginalien", m.Marginalien},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("manifest %s: missing required keys: %s", path, strings.Join(missing, ", "))
	}

	m.dir = filepath.Dir(path)
	return &m, nil
}

// Inputs resolves the manifest's paths against its own directory.
func (m *Manifest) Inputs() check.Inputs {
	in := check.Inputs{
		Meta:        m.resolve(m.Meta),
		References:  m.resolve(m.References),
		Briefe:      m.resolve(m.Briefe),
		Edits:       m.resolve(m.Edits),
		Traditions:  m.resolve(m.Traditions),
		Marginalien: m.resolve(m.Marginalien),
	}
	for _, reg := range m.Registers {
		in.Registers = append(in.Registers, m.resolve(reg))
	}
	return in
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}
