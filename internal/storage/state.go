package storage

import "encoding/json"

// State keeps one named value synchronized with a durable slot.
// Every Set serializes and persists before returning (write-through);
// there is no batching or debounce, so a crash after a mutation loses
// at most the mutation in flight.
type State[T any] struct {
	store   Store
	key     string
	value   T
	readErr error
}

// Load reads the slot once and returns a State holding its value.
// An absent or malformed slot yields the caller-supplied default and
// leaves the slot unwritten; malformed data never raises. A read
// failure is different: the slot may hold real data we could not see,
// so the error is returned and the State refuses write-through from
// then on. The session continues on the default, in memory only.
func Load[T any](store Store, key string, def T) (*State[T], error) {
	s := &State[T]{store: store, key: key, value: def}

	data, ok, err := store.Read(key)
	if err != nil {
		s.readErr = err
		return s, err
	}
	if !ok {
		return s, nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		// Malformed data is treated as absence
		return s, nil
	}
	s.value = value
	return s, nil
}

// Get returns the current in-memory value.
func (s *State[T]) Get() T {
	return s.value
}

// Set replaces the value and writes it through to the slot.
// On storage failure the in-memory value is kept and the error is
// returned as a *Error. A slot whose load failed is never rewritten:
// the durable data was never seen, so a write would clobber it.
func (s *State[T]) Set(value T) error {
	s.value = value

	if s.readErr != nil {
		return &Error{Op: "write", Key: s.key, Err: s.readErr}
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return &Error{Op: "write", Key: s.key, Err: err}
	}
	return s.store.Write(s.key, data)
}

// Update applies fn to the current value and writes the result through.
func (s *State[T]) Update(fn func(T) T) error {
	return s.Set(fn(s.value))
}
