package formstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Store(t *testing.T) {
	s := New()

	if _, ok := s.Value(ChartVersion); ok {
		t.Fatalf("expected %#q to be unset", ChartVersion)
	}
	if s.IsAbsent(ChartValuesYAML) {
		t.Fatalf("expected unset %#q not to be absent", ChartValuesYAML)
	}

	s.SetFieldValue(ChartVersion, "1.2.3")
	s.SetFieldValue(ChartValuesYAML, Absent)

	v, ok := s.String(ChartVersion)
	if !ok || v != "1.2.3" {
		t.Fatalf("String(%#q) = %#q, %t, want %#q, true", ChartVersion, v, ok, "1.2.3")
	}

	if !s.IsAbsent(ChartValuesYAML) {
		t.Fatalf("expected %#q to be absent", ChartValuesYAML)
	}
	if _, ok := s.String(ChartValuesYAML); ok {
		t.Fatalf("expected absent %#q not to be a string", ChartValuesYAML)
	}

	expected := map[string]interface{}{
		ChartVersion:    "1.2.3",
		ChartValuesYAML: nil,
	}
	values := s.Values()
	if !cmp.Equal(values, expected) {
		t.Fatalf("want matching values \n %s", cmp.Diff(values, expected))
	}

	// Mutating the copy must not leak into the store.
	values[HelmChartURL] = "https://example.com"
	if _, ok := s.Value(HelmChartURL); ok {
		t.Fatalf("expected %#q to be unset", HelmChartURL)
	}
}
