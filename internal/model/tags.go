package model

// DedupeTags removes duplicate tags, keeping the first occurrence of each.
func DedupeTags(tags []string) []string {
	result := []string{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}

// MergeTags appends tags not already present in registry, preserving
// first-seen order. Returns the grown registry and whether it changed.
func MergeTags(registry []string, tags []string) ([]string, bool) {
	seen := make(map[string]bool, len(registry))
	for _, t := range registry {
		seen[t] = true
	}

	changed := false
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		registry = append(registry, t)
		changed = true
	}
	return registry, changed
}
