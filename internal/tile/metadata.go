package tile

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tiles.yaml
var defaultTilesYAML []byte

// Definition is the display data for a tile id from the YAML file
type Definition struct {
	ID     ID     `yaml:"id"`
	Name   string `yaml:"name"`
	Colour string `yaml:"colour"` // hex, e.g. "#2e8b57"
}

// MetadataConfig represents the structure of the tiles.yaml file
type MetadataConfig struct {
	Tiles []Definition `yaml:"tiles"`
}

// Metadata maps tile ids to their display data.
type Metadata map[ID]Definition

// LoadMetadata parses the tile definitions compiled into the binary.
func LoadMetadata() (Metadata, error) {
	return parseMetadata(defaultTilesYAML)
}

// LoadMetadataFromYAML loads tile definitions from a YAML file
func LoadMetadataFromYAML(filename string) (Metadata, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiles file: %w", err)
	}
	return parseMetadata(data)
}

func parseMetadata(data []byte) (Metadata, error) {
	var config MetadataConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tiles YAML: %w", err)
	}

	meta := make(Metadata, len(config.Tiles))
	for _, def := range config.Tiles {
		if _, err := FromID(def.ID, PlayerOne); err != nil {
			return nil, fmt.Errorf("tile %q: %w", def.Name, err)
		}
		if _, dup := meta[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tile id %d", def.ID)
		}
		meta[def.ID] = def
	}
	return meta, nil
}

// Lookup returns the definition for a tile, if it has one.
func (m Metadata) Lookup(t Type) (Definition, bool) {
	id, err := t.ID()
	if err != nil {
		return Definition{}, false
	}
	def, ok := m[id]
	return def, ok
}

// RGB decodes a "#rrggbb" colour string.
func (d Definition) RGB() (r, g, b int, err error) {
	if _, err := fmt.Sscanf(d.Colour, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, fmt.Errorf("tile %q: bad colour %q: %w", d.Name, d.Colour, err)
	}
	return r, g, b, nil
}
