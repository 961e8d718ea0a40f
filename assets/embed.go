package assets

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soocke/pixel-label-go/domain/interaction"
)

// KeymapYAML contains the raw bytes of the default key bindings.
//
//go:embed keymap.yaml
var KeymapYAML []byte

type keymapFile struct {
	Keys map[string]string `yaml:"keys"`
}

// DefaultKeymap decodes the embedded key bindings into keysym -> intent.
func DefaultKeymap() (map[string]string, error) {
	if len(KeymapYAML) == 0 {
		return nil, fmt.Errorf("embedded keymap.yaml is empty")
	}
	var f keymapFile
	if err := yaml.Unmarshal(KeymapYAML, &f); err != nil {
		return nil, fmt.Errorf("decode keymap.yaml: %w", err)
	}
	return f.Keys, nil
}

// Keymap returns the embedded bindings with overrides applied on top. An
// override bound to "none" removes the key.
func Keymap(overrides map[string]string) (interaction.Keymap, error) {
	raw, err := DefaultKeymap()
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		if strings.EqualFold(strings.TrimSpace(v), "none") {
			delete(raw, k)
			continue
		}
		raw[k] = v
	}
	return interaction.ParseKeymap(raw)
}
