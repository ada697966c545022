package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Styles accepted by Render.
var Styles = []string{"plain", "json", "yaml", "tabs"}

// Render formats a settings value for display.
func Render(v any, style string) (string, error) {
	switch style {
	case "plain", "":
		return fmt.Sprintf("%v", v), nil
	case "json":
		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\n"), nil
	case "tabs":
		var sb strings.Builder
		renderTabs(&sb, v, 0)
		return strings.TrimRight(sb.String(), "\n"), nil
	default:
		return "", fmt.Errorf("unknown formatter %q", style)
	}
}

// renderTabs prints nested maps as sorted key lines, one tab deeper
// per level.
func renderTabs(sb *strings.Builder, v any, depth int) {
	indent := strings.Repeat("\t", depth)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sb, "%s%s\n", indent, k)
			renderTabs(sb, t[k], depth+1)
		}
	case []any:
		for _, e := range t {
			renderTabs(sb, e, depth)
		}
	default:
		fmt.Fprintf(sb, "%s%v\n", indent, t)
	}
}
