package agent

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/geminitool"
)

// GoogleSearch is the name of the built-in grounding tool.
const GoogleSearch = "google_search"

// DefaultTools is used when a Config leaves Tools nil.
var DefaultTools = []string{GoogleSearch}

var builtinTools = map[string]func() tool.Tool{
	GoogleSearch: func() tool.Tool { return geminitool.GoogleSearch{} },
}

// ToolNames lists the built-in tool names in sorted order.
func ToolNames() []string {
	names := make([]string, 0, len(builtinTools))
	for name := range builtinTools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildTools resolves tool names to ADK tools.
func BuildTools(names []string) ([]tool.Tool, error) {
	tools := make([]tool.Tool, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		mk, ok := builtinTools[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool %q (available: %s)", name, strings.Join(ToolNames(), ", "))
		}
		tools = append(tools, mk())
	}
	return tools, nil
}
