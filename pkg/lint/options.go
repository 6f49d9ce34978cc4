package lint

import "github.com/go-viper/mapstructure/v2"

// lookupOption returns the raw option value when the map carries it.
func lookupOption(opts map[string]any, key string) (any, bool) {
	if opts == nil {
		return nil, false
	}
	v, ok := opts[key]
	return v, ok
}

// GetOption extracts a typed option, falling back to defaultVal when
// the key is absent or holds a different type.
func GetOption[T any](opts map[string]any, key string, defaultVal T) T {
	v, ok := lookupOption(opts, key)
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetIntOption extracts an int option, accepting the numeric types the
// YAML and JSON decoders produce.
func GetIntOption(opts map[string]any, key string, defaultVal int) int {
	v, ok := lookupOption(opts, key)
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return defaultVal
}

// GetStringOption extracts a string option with a default.
func GetStringOption(opts map[string]any, key string, defaultVal string) string {
	return GetOption(opts, key, defaultVal)
}

// GetBoolOption extracts a bool option with a default.
func GetBoolOption(opts map[string]any, key string, defaultVal bool) bool {
	return GetOption(opts, key, defaultVal)
}

// GetStringSliceOption extracts a string slice option. YAML sequences
// decode as []any, so elements are coerced one by one.
func GetStringSliceOption(opts map[string]any, key string, defaultVal []string) []string {
	v, ok := lookupOption(opts, key)
	if !ok {
		return defaultVal
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, el := range list {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return defaultVal
}

// DecodeOptions decodes an options map into a typed struct using
// mapstructure tags. Rules with more than a key or two of configuration
// use this instead of the Get*Option helpers.
func DecodeOptions(opts map[string]any, out any) error {
	if opts == nil {
		return nil
	}
	return mapstructure.WeakDecode(opts, out)
}
