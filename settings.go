package flow

// Setting is one key/value entry of a node's settings.
type Setting struct {
	Key   string `json:"key" toml:"key" validate:"required"`
	Value any    `json:"value" toml:"value"`
}

// Settings is an ordered key/value list. Keys keep their first insertion
// position when overwritten.
type Settings []Setting

// Get returns the value stored under key.
func (s Settings) Get(key string) (any, bool) {
	for _, kv := range s {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Set returns s with key bound to value.
func (s Settings) Set(key string, value any) Settings {
	for i := range s {
		if s[i].Key == key {
			s[i].Value = value
			return s
		}
	}
	return append(s, Setting{Key: key, Value: value})
}

// Keys returns the keys in order.
func (s Settings) Keys() []string {
	keys := make([]string, len(s))
	for i, kv := range s {
		keys[i] = kv.Key
	}
	return keys
}

// Clone deep-copies s, including nested slices and maps.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for i, kv := range s {
		out[i] = Setting{Key: kv.Key, Value: cloneValue(kv.Value)}
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
