package audit

import (
	"encoding/json"
	"strings"
)

const redactedPlaceholder = "[REDACTED]"

// Snapshot serializes a domain value for the before/after columns. Any field
// whose name mentions password is replaced with a placeholder; plaintext or
// hashed credentials must never reach the trail, even transiently.
func Snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return data
	}
	redacted, err := json.Marshal(redactValue(decoded))
	if err != nil {
		return nil
	}
	return redacted
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if sensitiveKey(k) {
				t[k] = redactedPlaceholder
				continue
			}
			t[k] = redactValue(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = redactValue(val)
		}
		return t
	default:
		return v
	}
}

func sensitiveKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "secret")
}
