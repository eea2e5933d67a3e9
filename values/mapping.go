package values

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   Value
	Value Value
}

// Mapping holds pairs with structurally unique keys. Order is not significant
// on the wire but is kept for printing.
type Mapping struct {
	Entries []Entry
}

func (*Mapping) Kind() Kind { return KindMapping }

func NewMapping() *Mapping {
	return &Mapping{}
}

func (m *Mapping) Len() int {
	return len(m.Entries)
}

func (m *Mapping) index(key Value) int {
	for i, entry := range m.Entries {
		if Equal(entry.Key, key) {
			return i
		}
	}
	return -1
}

func (m *Mapping) Get(key Value) (Value, bool) {
	if i := m.index(key); i >= 0 {
		return m.Entries[i].Value, true
	}
	return nil, false
}

// Set replaces the value of an existing key or appends a new entry.
func (m *Mapping) Set(key, value Value) {
	if i := m.index(key); i >= 0 {
		m.Entries[i].Value = value
		return
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: value})
}

func (m *Mapping) Delete(key Value) {
	if i := m.index(key); i >= 0 {
		m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
	}
}
