package appyaml

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func parseMapping(t *testing.T, source string) *yaml.Node {
	t.Helper()
	var tree yaml.Node
	if err := yaml.Unmarshal([]byte(source), &tree); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if len(tree.Content) == 0 {
		t.Fatalf("fixture produced no document")
	}
	return tree.Content[0]
}

func TestScalarStringCanonicalForms(t *testing.T) {
	root := parseMapping(t, "s: hello\nb: True\ni: 8080\nf: 3.5\nn: null\n")

	testCases := []struct {
		key  string
		want string
	}{
		{"s", "hello"},
		{"b", "true"},
		{"i", "8080"},
		{"f", "3.5"},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := ScalarString(Lookup(root, tc.key))
			if !ok {
				t.Fatalf("expected scalar for key %q", tc.key)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	t.Run("null counts as absent", func(t *testing.T) {
		if n := Lookup(root, "n"); n != nil {
			t.Fatalf("expected explicit null to resolve as absent, got %v", n)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		if _, ok := ScalarString(Lookup(root, "missing")); ok {
			t.Fatalf("expected not-a-scalar for missing key")
		}
	})
}

func TestLookupLastValueWins(t *testing.T) {
	root := parseMapping(t, "entrypoint: first\nentrypoint: second\n")

	got, _ := ScalarString(Lookup(root, "entrypoint"))
	if got != "second" {
		t.Fatalf("expected last duplicate value, got %q", got)
	}
}

func TestStringList(t *testing.T) {
	root := parseMapping(t, "scalar: one\nseq:\n  - a\n  - 2\n")

	t.Run("absent", func(t *testing.T) {
		if got := StringList(Lookup(root, "missing")); len(got) != 0 {
			t.Fatalf("expected empty list, got %v", got)
		}
	})

	t.Run("scalar becomes single element", func(t *testing.T) {
		got := StringList(Lookup(root, "scalar"))
		if len(got) != 1 || got[0] != "one" {
			t.Fatalf("unexpected list: %v", got)
		}
	})

	t.Run("sequence stringifies elements", func(t *testing.T) {
		got := StringList(Lookup(root, "seq"))
		if len(got) != 2 || got[0] != "a" || got[1] != "2" {
			t.Fatalf("unexpected list: %v", got)
		}
	})
}

func TestPairsPreservesOrder(t *testing.T) {
	root := parseMapping(t, "vars:\n  ZEBRA: 1\n  ALPHA: two\n  MIKE: true\n")

	got := Pairs(Lookup(root, "vars"))
	want := []Pair{{"ZEBRA", "1"}, {"ALPHA", "two"}, {"MIKE", "true"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPairsDuplicateKeyKeepsPositionTakesLastValue(t *testing.T) {
	root := parseMapping(t, "vars:\n  A: first\n  B: middle\n  A: last\n")

	got := Pairs(Lookup(root, "vars"))
	if len(got) != 2 {
		t.Fatalf("expected duplicate key to collapse, got %v", got)
	}
	if got[0] != (Pair{"A", "last"}) || got[1] != (Pair{"B", "middle"}) {
		t.Fatalf("unexpected pairs: %v", got)
	}
}

func TestPairsNonMapping(t *testing.T) {
	root := parseMapping(t, "vars: not-a-mapping\n")

	if got := Pairs(Lookup(root, "vars")); len(got) != 0 {
		t.Fatalf("expected no pairs for scalar node, got %v", got)
	}
}
