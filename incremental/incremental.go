// Package incremental computes the minimal document that still needs
// translation, given previously saved per-language outputs. Keys already
// translated for every requested language are not sent to the API again.
package incremental

import (
	"github.com/Shipi18n/shipi18n-cli/locale"
)

// Stats summarizes an incremental plan in source leaf keys.
type Stats struct {
	// Total is the number of leaf keys in the source document.
	Total int
	// AlreadyTranslated is Total minus the keys still needed anywhere.
	AlreadyTranslated int
	// ToTranslate is the size of the union of per-language missing keys.
	ToTranslate int
}

// Plan is the outcome of incremental planning.
type Plan struct {
	// ToTranslate is the narrowed source document to send to the API.
	// A key appears here if it is missing for at least one requested
	// language, so every language eventually receives every key.
	ToTranslate locale.Document
	// MissingByLanguage counts missing leaf keys per requested language.
	MissingByLanguage map[string]int
	Stats             Stats
}

// Nothing reports whether no keys need translation; callers should then
// skip the remote call entirely.
func (p Plan) Nothing() bool {
	return p.Stats.ToTranslate == 0
}

// Compute diffs the source document against each language's previously
// saved output (absent languages count as fully untranslated) and unions
// the missing keys into one plan. Values in ToTranslate are the source
// values.
func Compute(source locale.Document, existing map[string]locale.Document, languages []string) Plan {
	combined := make(map[string]any)
	missingByLang := make(map[string]int, len(languages))

	for _, lang := range languages {
		prior := existing[lang]
		if prior == nil {
			prior = locale.Document{}
		}
		missingFlat := locale.Flatten(locale.FindMissingKeys(source, prior))
		missingByLang[lang] = len(missingFlat)
		for path, value := range missingFlat {
			combined[path] = value
		}
	}

	total := locale.LeafCount(source)
	return Plan{
		ToTranslate:       locale.Unflatten(combined),
		MissingByLanguage: missingByLang,
		Stats: Stats{
			Total:             total,
			AlreadyTranslated: total - len(combined),
			ToTranslate:       len(combined),
		},
	}
}
