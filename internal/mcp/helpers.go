package mcpserver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// optionalInt reads an integer argument that may be absent or null.
// Clients send JSON numbers; some send numeric strings.
func optionalInt(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		n := int(v)
		return &n, nil
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", key, v)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}
