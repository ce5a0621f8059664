// Package fallback implements regional language expansion and the
// translation-result reconciler.
//
// Regional codes ("pt-BR") inherit from a base code ("pt"). Before the
// remote call, Resolve expands the requested language list so the base
// translations arrive in the same request; after the call, Reconcile fills
// whole-language and per-key gaps from the base language first, then from
// the source document, and records everything it substituted.
package fallback

import (
	"strings"

	"github.com/Shipi18n/shipi18n-cli/locale"
)

// Expansion is the result of regional language resolution.
type Expansion struct {
	// Targets holds every originally requested language exactly once,
	// followed by synthesized base languages in discovery order.
	Targets []string
	// RegionalMap maps each expanded regional code to its base code.
	RegionalMap map[string]string
}

// BaseLanguage returns the base portion of a regional code ("pt-BR" -> "pt")
// and whether the code is regional at all. Codes with more than one hyphen
// ("zh-Hans-CN") resolve to the segment before the first hyphen.
func BaseLanguage(lang string) (string, bool) {
	base, _, found := strings.Cut(lang, "-")
	if !found || base == "" {
		return "", false
	}
	return base, true
}

// Resolve expands a target-language list for regional fallback. When
// regionalFallback is false no base languages are synthesized and the
// regional map is empty. Duplicate requests are collapsed; request order
// is preserved.
func Resolve(targets []string, regionalFallback bool) Expansion {
	exp := Expansion{RegionalMap: make(map[string]string)}

	seen := make(map[string]bool, len(targets))
	for _, lang := range targets {
		if seen[lang] {
			continue
		}
		seen[lang] = true
		exp.Targets = append(exp.Targets, lang)
	}

	if !regionalFallback {
		return exp
	}

	for _, lang := range targets {
		base, ok := BaseLanguage(lang)
		if !ok {
			continue
		}
		exp.RegionalMap[lang] = base
		if !seen[base] {
			seen[base] = true
			exp.Targets = append(exp.Targets, base)
		}
	}

	return exp
}

// Info records every fallback the reconciler applied. It is the caller's
// material for warnings; a non-empty Info is never an error.
type Info struct {
	// Used is true iff any of the three records below is non-empty.
	Used bool
	// RegionalFallbacks maps languages whose entire document was copied
	// from their base language ("pt-BR" -> "pt").
	RegionalFallbacks map[string]string
	// SourceFallbackLanguages lists languages whose entire document was
	// copied from the source document.
	SourceFallbackLanguages []string
	// FallbackKeys maps each language to the dot-paths of individual keys
	// that were filled from the base language or the source document.
	FallbackKeys map[string][]string
}

// Options controls reconciliation behavior.
type Options struct {
	// FallbackToSource enables copying source values for gaps no base
	// language can fill.
	FallbackToSource bool
	// RegionalFallback enables base-language fallback using RegionalMap.
	RegionalFallback bool
	// RegionalMap maps regional codes to base codes, as produced by Resolve.
	RegionalMap map[string]string
}

// Reconcile produces a complete per-language result set from raw remote
// results. Only the requested languages are reconciled; synthesized base
// languages act purely as fallback sources. Neither source nor the raw
// results are mutated — every filled document is a copy.
//
// Gaps that no fallback can fill are left as-is: absent languages stay
// absent and unset keys stay unset. Callers decide whether to warn.
func Reconcile(raw map[string]locale.Document, source locale.Document, requested []string, opts Options) (map[string]locale.Document, Info) {
	info := Info{
		RegionalFallbacks: make(map[string]string),
		FallbackKeys:      make(map[string][]string),
	}
	results := make(map[string]locale.Document, len(requested))

	for _, lang := range requested {
		result, ok := raw[lang]

		if !ok || len(result) == 0 {
			// Whole language missing: try the base language, then source.
			if opts.RegionalFallback {
				if base, mapped := opts.RegionalMap[lang]; mapped && len(raw[base]) > 0 {
					results[lang] = locale.Copy(raw[base])
					info.RegionalFallbacks[lang] = base
					continue
				}
			}
			if opts.FallbackToSource {
				results[lang] = locale.Copy(source)
				info.SourceFallbackLanguages = append(info.SourceFallbackLanguages, lang)
				continue
			}
			if ok {
				results[lang] = locale.Copy(result)
			}
			continue
		}

		if !opts.FallbackToSource {
			results[lang] = locale.Copy(result)
			continue
		}

		// Partial result: fill individual missing keys, base language first.
		missing := locale.FindMissingKeys(source, result)
		if len(missing) == 0 {
			results[lang] = locale.Copy(result)
			continue
		}

		var baseFlat map[string]any
		if opts.RegionalFallback {
			if base, mapped := opts.RegionalMap[lang]; mapped && len(raw[base]) > 0 {
				baseFlat = locale.Flatten(raw[base])
			}
		}

		patch := make(map[string]any)
		missingFlat := locale.Flatten(missing)
		for _, path := range locale.SortedPaths(missingFlat) {
			value := missingFlat[path]
			if baseVal, exists := baseFlat[path]; exists && baseVal != nil && baseVal != "" {
				value = baseVal
			}
			if value == nil || value == "" {
				continue
			}
			patch[path] = value
			info.FallbackKeys[lang] = append(info.FallbackKeys[lang], path)
		}

		results[lang] = locale.DeepMerge(result, locale.Unflatten(patch))
	}

	info.Used = len(info.RegionalFallbacks) > 0 ||
		len(info.SourceFallbackLanguages) > 0 ||
		len(info.FallbackKeys) > 0

	return results, info
}
