package locale

import (
	"reflect"
	"testing"
)

func TestFlattenNestedDocument(t *testing.T) {
	doc := Document{
		"nav": Document{
			"home":  "Home",
			"about": "About",
		},
		"title": "Welcome",
		"tags":  []any{"a", "b"},
	}

	flat := Flatten(doc)

	want := map[string]any{
		"nav.home":  "Home",
		"nav.about": "About",
		"title":     "Welcome",
		"tags":      []any{"a", "b"},
	}
	if !reflect.DeepEqual(flat, want) {
		t.Fatalf("Flatten = %#v, want %#v", flat, want)
	}
}

func TestFlattenTreatsArraysAndNilAsLeaves(t *testing.T) {
	doc := Document{
		"items": []any{Document{"inner": "x"}},
		"empty": nil,
	}

	flat := Flatten(doc)

	if _, ok := flat["items"]; !ok {
		t.Fatal("array should be kept as a single leaf")
	}
	if _, ok := flat["items.0.inner"]; ok {
		t.Fatal("arrays must not be descended into")
	}
	if v, ok := flat["empty"]; !ok || v != nil {
		t.Fatalf("nil leaf = %v (present=%v), want nil present", v, ok)
	}
}

func TestFlattenEmptyDocument(t *testing.T) {
	if flat := Flatten(Document{}); len(flat) != 0 {
		t.Fatalf("Flatten({}) = %v, want empty", flat)
	}
	if doc := Unflatten(map[string]any{}); len(doc) != 0 {
		t.Fatalf("Unflatten({}) = %v, want empty", doc)
	}
}

func TestUnflattenRoundTrip(t *testing.T) {
	docs := []Document{
		{},
		{"a": "A"},
		{"a": Document{"b": Document{"c": "deep"}}, "x": float64(1)},
		{"nav": Document{"home": "Home"}, "list": []any{"one", "two"}, "flag": true},
		{"n": nil},
	}

	for _, doc := range docs {
		got := Unflatten(Flatten(doc))
		if !reflect.DeepEqual(got, doc) {
			t.Fatalf("round trip changed document: got %#v, want %#v", got, doc)
		}
	}
}

func TestUnflattenSharedPrefixes(t *testing.T) {
	flat := map[string]any{
		"a.b.c": "1",
		"a.b.d": "2",
		"a.e":   "3",
	}

	doc := Unflatten(flat)

	want := Document{
		"a": Document{
			"b": Document{"c": "1", "d": "2"},
			"e": "3",
		},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("Unflatten = %#v, want %#v", doc, want)
	}
}

func TestSortedPaths(t *testing.T) {
	flat := map[string]any{"b": 1, "a.z": 2, "a.b": 3}
	got := SortedPaths(flat)
	want := []string{"a.b", "a.z", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedPaths = %v, want %v", got, want)
	}
}

func TestCopyIsDeep(t *testing.T) {
	doc := Document{"a": Document{"b": "B"}}
	cp := Copy(doc)

	cp["a"].(Document)["b"] = "changed"

	if doc["a"].(Document)["b"] != "B" {
		t.Fatal("Copy shares nested objects with the original")
	}
}

func TestLeafCount(t *testing.T) {
	doc := Document{"a": Document{"b": "B", "c": "C"}, "d": "D"}
	if got := LeafCount(doc); got != 3 {
		t.Fatalf("LeafCount = %d, want 3", got)
	}
}
