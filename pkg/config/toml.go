package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// PyprojectFile is the standard Python project metadata file.
const PyprojectFile = "pyproject.toml"

type pyproject struct {
	Tool struct {
		Pepfix toml.Primitive `toml:"pepfix"`
	} `toml:"tool"`
}

// DecodePyproject overlays the [tool.pepfix] table of a pyproject.toml onto c.
// It reports whether the table was present. Unknown keys inside the table are
// rejected; the rest of the file is ignored.
func (c *Config) DecodePyproject(data []byte) (bool, error) {
	table := []string{"tool", "pepfix"}

	var doc pyproject
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return false, fmt.Errorf("parse toml: %w", err)
	}

	if !meta.IsDefined(table...) {
		return false, nil
	}

	if err := meta.PrimitiveDecode(doc.Tool.Pepfix, c); err != nil {
		return true, fmt.Errorf("decode [tool.pepfix]: %w", err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		if len(key) > len(table) && slices.Equal([]string(key[:len(table)]), table) {
			unknown = append(unknown, key.String())
		}
	}
	if len(unknown) > 0 {
		return true, fmt.Errorf("unknown keys in [tool.pepfix]: %s", strings.Join(unknown, ", "))
	}

	return true, nil
}
