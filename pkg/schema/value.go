package schema

// Value is a decoded document node: nil, bool, string, int64, float64,
// []Value, or *Object.
type Value any

// Object is a mapping node that preserves key declaration order.
// Declaration order drives traversal order, so it must survive decoding.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty ordered mapping.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores a value under key. A new key is appended; an existing key
// keeps its original position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is declared.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in declaration order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// GetObject returns the value for key if it is a mapping.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// GetString returns the value for key if it is a string.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns the value for key if it is an integer.
func (o *Object) GetInt(key string) (int64, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// =============================================================================
// Schema node accessors
// =============================================================================

// Type returns the declared "type" of a schema node, or "" if absent or
// not a string.
func (o *Object) Type() string {
	s, _ := o.GetString("type")
	return s
}

// Format returns the declared "format" of a schema node, or "".
func (o *Object) Format() string {
	s, _ := o.GetString("format")
	return s
}

// Properties returns the nested "properties" mapping if present and
// well-formed.
func (o *Object) Properties() (*Object, bool) {
	return o.GetObject("properties")
}

// Items returns the "items" schema node if present and well-formed.
func (o *Object) Items() (*Object, bool) {
	return o.GetObject("items")
}

// Required returns the names listed in the "required" array.
// Non-string entries are ignored.
func (o *Object) Required() []string {
	v, ok := o.values["required"]
	if !ok {
		return nil
	}
	list, ok := v.([]Value)
	if !ok {
		return nil
	}
	var names []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			names = append(names, s)
		}
	}
	return names
}
