package value

// Object is an insertion-ordered string-keyed map. It pairs a map for
// O(1) lookup with a slice of keys for iteration order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or updates key. Updating an existing key keeps its original
// position in iteration order (insertion order is preserved, not
// re-insertion order).
func (o *Object) Set(key string, val Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Get looks up key, reporting whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated by the caller.
func (o *Object) Keys() []string {
	return o.keys
}

// Range calls f for each entry in insertion order, stopping early if f
// returns false.
func (o *Object) Range(f func(key string, val Value) bool) {
	for _, k := range o.keys {
		if !f(k, o.values[k]) {
			return
		}
	}
}

// Clone returns a deep-enough copy: a new key slice and map, sharing
// Value payloads (Values are themselves treated as immutable once built).
func (o *Object) Clone() *Object {
	c := &Object{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]Value, len(o.values)),
	}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// Equal reports structural equality: same keys in the same order, with
// equal values. Object order is observable.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.keys) != len(other.keys) {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		if !Equal(o.values[k], other.values[other.keys[i]]) {
			return false
		}
	}
	return true
}
