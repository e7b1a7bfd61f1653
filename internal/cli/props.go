package cli

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbox"
)

// parseProps decodes a YAML (or JSON) mapping into props.
func parseProps(src string) (hxbox.Props, error) {
	props := hxbox.Props{}
	if src == "" {
		return props, nil
	}
	var data map[string]any
	if err := yaml.Unmarshal([]byte(src), &data); err != nil {
		return nil, fmt.Errorf("invalid props: %w", err)
	}
	for k, v := range data {
		props[k] = v
	}
	return props, nil
}
