package dotenv

// Vars is an insertion-ordered mapping of variable names to values.
// Assigning an existing key overwrites its value but keeps the position
// of the first assignment.
type Vars struct {
	keys   []string
	values map[string]string
}

// NewVars returns an empty mapping.
func NewVars() *Vars {
	return &Vars{values: make(map[string]string)}
}

// Set stores the value for key, appending the key on first assignment.
func (v *Vars) Set(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value for key and whether it is present.
func (v *Vars) Get(key string) (string, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Has reports whether key is present.
func (v *Vars) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Len returns the number of variables.
func (v *Vars) Len() int {
	return len(v.keys)
}

// Keys returns the variable names in assignment order.
func (v *Vars) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Map returns a plain map copy of the variables.
func (v *Vars) Map() map[string]string {
	m := make(map[string]string, len(v.values))
	for k, val := range v.values {
		m[k] = val
	}
	return m
}
