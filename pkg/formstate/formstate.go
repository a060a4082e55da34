// Package formstate provides the shared form-state store written by the
// console components. Each component only writes the keys it owns.
package formstate

import (
	"sync"
)

const (
	// ChartVersion holds the chart version selected by the user.
	ChartVersion = "chartVersion"
	// HelmChartURL holds the artifact URL resolved for the selected version.
	HelmChartURL = "helmChartURL"
	// ChartValuesYAML holds the default values of the selected chart as YAML
	// or the absent marker when the chart has no default values.
	ChartValuesYAML = "chartValuesYAML"
)

// Absent is the explicit absent marker. Writing it differs from never
// writing the key at all.
var Absent interface{} = nil

type Store struct {
	mutex  sync.RWMutex
	values map[string]interface{}
}

func New() *Store {
	s := &Store{
		values: map[string]interface{}{},
	}

	return s
}

func (s *Store) SetFieldValue(key string, value interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
}

// Value returns the value written for key. ok is true whenever the key was
// written, including writes of the absent marker.
func (s *Store) Value(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// String returns the value of key when it holds a string.
func (s *Store) String(key string) (string, bool) {
	v, ok := s.Value(key)
	if !ok {
		return "", false
	}

	str, ok := v.(string)
	return str, ok
}

func (s *Store) IsAbsent(key string) bool {
	v, ok := s.Value(key)
	return ok && v == Absent
}

// Values returns a copy of all written keys.
func (s *Store) Values() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	c := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		c[k] = v
	}

	return c
}
