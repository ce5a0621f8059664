package locale

// DeepMerge combines two Documents without mutating either one.
// For every key in source: when both sides hold a nested object the
// objects are merged recursively; otherwise the source value replaces
// the target value wholesale (arrays included — they are never
// concatenated). Keys present only in target are preserved.
func DeepMerge(target, source Document) Document {
	out := Copy(target)
	for key, srcVal := range source {
		srcChild, srcIsObj := isObject(srcVal)
		tgtChild, tgtIsObj := isObject(out[key])

		if srcIsObj && tgtIsObj {
			out[key] = DeepMerge(tgtChild, srcChild)
			continue
		}

		if srcIsObj {
			out[key] = Copy(srcChild)
			continue
		}
		out[key] = srcVal
	}
	return out
}
