package locale

// FindMissingKeys returns the subtree of source whose values are absent,
// nil, or an empty string in target. The result is itself a nested
// Document carrying the source values, so it can be fed straight back
// into translation or fallback.
//
// Recursion only happens when both sides hold a nested object at the same
// key; arrays and scalars are compared as whole leaves — a key is either
// missing or it is not.
func FindMissingKeys(source, target Document) Document {
	missing := make(Document)
	for key, srcVal := range source {
		tgtVal, exists := target[key]

		srcChild, srcIsObj := isObject(srcVal)
		tgtChild, tgtIsObj := isObject(tgtVal)

		if srcIsObj && tgtIsObj {
			if sub := FindMissingKeys(srcChild, tgtChild); len(sub) > 0 {
				missing[key] = sub
			}
			continue
		}

		if !exists || tgtVal == nil || tgtVal == "" {
			missing[key] = srcVal
		}
	}
	return missing
}
