package fallback

import (
	"reflect"
	"testing"

	"github.com/Shipi18n/shipi18n-cli/locale"
)

func TestBaseLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		base     string
		regional bool
	}{
		{"es", "", false},
		{"pt-BR", "pt", true},
		{"zh-Hans-CN", "zh", true},
		{"-BR", "", false},
	}
	for _, tt := range tests {
		base, ok := BaseLanguage(tt.lang)
		if base != tt.base || ok != tt.regional {
			t.Fatalf("BaseLanguage(%q) = %q, %v; want %q, %v", tt.lang, base, ok, tt.base, tt.regional)
		}
	}
}

func TestResolveExpandsRegionalVariants(t *testing.T) {
	exp := Resolve([]string{"es", "pt-BR"}, true)

	if !reflect.DeepEqual(exp.Targets, []string{"es", "pt-BR", "pt"}) {
		t.Fatalf("Targets = %v, want [es pt-BR pt]", exp.Targets)
	}
	if !reflect.DeepEqual(exp.RegionalMap, map[string]string{"pt-BR": "pt"}) {
		t.Fatalf("RegionalMap = %v, want {pt-BR: pt}", exp.RegionalMap)
	}
}

func TestResolveDisabled(t *testing.T) {
	exp := Resolve([]string{"es", "pt-BR"}, false)

	if !reflect.DeepEqual(exp.Targets, []string{"es", "pt-BR"}) {
		t.Fatalf("Targets = %v, want [es pt-BR]", exp.Targets)
	}
	if len(exp.RegionalMap) != 0 {
		t.Fatalf("RegionalMap = %v, want empty", exp.RegionalMap)
	}
}

func TestResolveBaseAlreadyRequested(t *testing.T) {
	exp := Resolve([]string{"pt", "pt-BR", "pt-PT"}, true)

	if !reflect.DeepEqual(exp.Targets, []string{"pt", "pt-BR", "pt-PT"}) {
		t.Fatalf("Targets = %v, want pt appended once only", exp.Targets)
	}
	want := map[string]string{"pt-BR": "pt", "pt-PT": "pt"}
	if !reflect.DeepEqual(exp.RegionalMap, want) {
		t.Fatalf("RegionalMap = %v, want %v", exp.RegionalMap, want)
	}
}

func TestResolveDeduplicatesRequests(t *testing.T) {
	exp := Resolve([]string{"es", "es", "de"}, true)
	if !reflect.DeepEqual(exp.Targets, []string{"es", "de"}) {
		t.Fatalf("Targets = %v, want [es de]", exp.Targets)
	}
}

func TestReconcileRegionalWholeLanguageFallback(t *testing.T) {
	source := locale.Document{"a": "A", "b": "B"}
	raw := map[string]locale.Document{
		"pt": {"a": "PA", "b": "PB"},
	}

	results, info := Reconcile(raw, source, []string{"pt-BR"}, Options{
		FallbackToSource: true,
		RegionalFallback: true,
		RegionalMap:      map[string]string{"pt-BR": "pt"},
	})

	if !reflect.DeepEqual(results["pt-BR"], raw["pt"]) {
		t.Fatalf("pt-BR = %#v, want copy of pt", results["pt-BR"])
	}
	if !reflect.DeepEqual(info.RegionalFallbacks, map[string]string{"pt-BR": "pt"}) {
		t.Fatalf("RegionalFallbacks = %v, want {pt-BR: pt}", info.RegionalFallbacks)
	}
	if len(info.SourceFallbackLanguages) != 0 {
		t.Fatalf("unexpected source fallback: %v", info.SourceFallbackLanguages)
	}
	if !info.Used {
		t.Fatal("Used should be true after a regional fallback")
	}
}

func TestReconcileSourceWholeLanguageFallback(t *testing.T) {
	source := locale.Document{"a": "A", "b": "B"}

	results, info := Reconcile(map[string]locale.Document{}, source, []string{"de"}, Options{
		FallbackToSource: true,
	})

	if !reflect.DeepEqual(results["de"], source) {
		t.Fatalf("de = %#v, want source document", results["de"])
	}
	if !reflect.DeepEqual(info.SourceFallbackLanguages, []string{"de"}) {
		t.Fatalf("SourceFallbackLanguages = %v, want [de]", info.SourceFallbackLanguages)
	}
}

func TestReconcileFallbackDisabledLeavesGap(t *testing.T) {
	source := locale.Document{"a": "A"}

	results, info := Reconcile(map[string]locale.Document{}, source, []string{"de"}, Options{})

	if _, ok := results["de"]; ok {
		t.Fatalf("de should stay absent, got %#v", results["de"])
	}
	if info.Used {
		t.Fatal("Used should be false when nothing was filled")
	}
}

func TestReconcilePartialKeyFallbackToSource(t *testing.T) {
	source := locale.Document{"a": "A", "b": "B"}
	raw := map[string]locale.Document{
		"es": {"a": "EA"},
	}

	results, info := Reconcile(raw, source, []string{"es"}, Options{FallbackToSource: true})

	want := locale.Document{"a": "EA", "b": "B"}
	if !reflect.DeepEqual(results["es"], want) {
		t.Fatalf("es = %#v, want %#v", results["es"], want)
	}
	if !reflect.DeepEqual(info.FallbackKeys["es"], []string{"b"}) {
		t.Fatalf("FallbackKeys[es] = %v, want [b]", info.FallbackKeys["es"])
	}
}

func TestReconcilePartialKeyPrefersBaseLanguage(t *testing.T) {
	source := locale.Document{"a": "A", "b": "B"}
	raw := map[string]locale.Document{
		"pt-BR": {"a": "BRA"},
		"pt":    {"a": "PA", "b": "PB"},
	}

	results, info := Reconcile(raw, source, []string{"pt-BR"}, Options{
		FallbackToSource: true,
		RegionalFallback: true,
		RegionalMap:      map[string]string{"pt-BR": "pt"},
	})

	want := locale.Document{"a": "BRA", "b": "PB"}
	if !reflect.DeepEqual(results["pt-BR"], want) {
		t.Fatalf("pt-BR = %#v, want %#v", results["pt-BR"], want)
	}
	if !reflect.DeepEqual(info.FallbackKeys["pt-BR"], []string{"b"}) {
		t.Fatalf("FallbackKeys[pt-BR] = %v, want [b]", info.FallbackKeys["pt-BR"])
	}
}

func TestReconcileNestedPartialFallback(t *testing.T) {
	source := locale.Document{
		"nav":   locale.Document{"home": "Home", "about": "About"},
		"title": "Welcome",
	}
	raw := map[string]locale.Document{
		"es": {"nav": locale.Document{"home": "Inicio"}},
	}

	results, info := Reconcile(raw, source, []string{"es"}, Options{FallbackToSource: true})

	want := locale.Document{
		"nav":   locale.Document{"home": "Inicio", "about": "About"},
		"title": "Welcome",
	}
	if !reflect.DeepEqual(results["es"], want) {
		t.Fatalf("es = %#v, want %#v", results["es"], want)
	}
	if !reflect.DeepEqual(info.FallbackKeys["es"], []string{"nav.about", "title"}) {
		t.Fatalf("FallbackKeys[es] = %v, want [nav.about title]", info.FallbackKeys["es"])
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	source := locale.Document{"a": "A", "b": "B"}
	raw := map[string]locale.Document{
		"es": {"a": "EA"},
	}

	results, _ := Reconcile(raw, source, []string{"es"}, Options{FallbackToSource: true})
	results["es"]["a"] = "mutated"
	results["es"]["b"] = "mutated"

	if raw["es"]["a"] != "EA" {
		t.Fatal("raw result was mutated")
	}
	if _, ok := raw["es"]["b"]; ok {
		t.Fatal("raw result gained a filled key")
	}
	if source["b"] != "B" {
		t.Fatal("source document was mutated")
	}
}

func TestReconcileValueFoundNowhereLeftUnset(t *testing.T) {
	source := locale.Document{"a": "A", "gap": ""}
	raw := map[string]locale.Document{
		"es": {"a": "EA"},
	}

	results, info := Reconcile(raw, source, []string{"es"}, Options{FallbackToSource: true})

	if _, ok := results["es"]["gap"]; ok {
		t.Fatalf("gap should stay unset, got %#v", results["es"]["gap"])
	}
	if len(info.FallbackKeys["es"]) != 0 {
		t.Fatalf("FallbackKeys[es] = %v, want empty", info.FallbackKeys["es"])
	}
}

func TestReconcileBaseLanguageAlsoRequested(t *testing.T) {
	source := locale.Document{"a": "A"}
	raw := map[string]locale.Document{
		"pt": {"a": "PA"},
	}

	results, _ := Reconcile(raw, source, []string{"pt", "pt-BR"}, Options{
		FallbackToSource: true,
		RegionalFallback: true,
		RegionalMap:      map[string]string{"pt-BR": "pt"},
	})

	if !reflect.DeepEqual(results["pt"], raw["pt"]) {
		t.Fatalf("pt = %#v, want its own result", results["pt"])
	}
	if !reflect.DeepEqual(results["pt-BR"], raw["pt"]) {
		t.Fatalf("pt-BR = %#v, want pt's document", results["pt-BR"])
	}
}
