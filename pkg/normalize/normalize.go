// Package normalize flattens submitted form values into display strings.
// Form builders deliver structured answers for names, phone numbers and
// addresses; everything that feeds a contact or lead column goes through
// Display first.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Display converts an arbitrary submitted value to a single display string.
// Primitives are stringified directly, nil becomes the empty string, and
// known structured shapes (name, phone, address) are joined part by part
// with empty parts skipped. Unrecognized objects fall back to their JSON
// encoding.
func Display(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case map[string]interface{}:
		return displayObject(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := Display(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func displayObject(obj map[string]interface{}) string {
	if hasKey(obj, "first") || hasKey(obj, "last") {
		return joinParts(obj, []string{"prefix", "first", "middle", "last", "suffix"}, " ")
	}
	if hasKey(obj, "area") || hasKey(obj, "phone") {
		area := part(obj, "area")
		phone := part(obj, "phone")
		if area != "" {
			return "(" + area + ") " + phone
		}
		return phone
	}
	if hasKey(obj, "addr_line1") {
		return joinParts(obj, []string{"addr_line1", "addr_line2", "city", "state", "postal", "country"}, ", ")
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(raw)
}

func hasKey(obj map[string]interface{}, key string) bool {
	_, ok := obj[key]
	return ok
}

func part(obj map[string]interface{}, key string) string {
	if v, ok := obj[key]; ok {
		return strings.TrimSpace(Display(v))
	}
	return ""
}

func joinParts(obj map[string]interface{}, keys []string, sep string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if p := part(obj, key); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, sep)
}
