package changes

// IsExcluded reports whether directory matches the exclusion pattern. A nil
// pattern excludes nothing.
func IsExcluded(directory string, cfg Config) bool {
	return cfg.Exclude != nil && cfg.Exclude.MatchString(directory)
}

// Filter applies the exclusion pattern and, in marker mode, replaces each
// candidate with the directory holding its marker file. Exclusion is tested
// on the candidate and always wins. The result is deduplicated in first-seen
// order.
func Filter(candidates []string, cfg Config, checker PathChecker) ([]string, error) {
	seen := make(map[string]bool, len(candidates))
	result := make([]string, 0, len(candidates))

	for _, dir := range candidates {
		if IsExcluded(dir, cfg) {
			continue
		}

		keep := dir
		if marker := cfg.Selection.Marker(); marker != "" {
			found, ok, err := FindMarkerDirectory(dir, marker, checker)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			keep = found
		}

		if !seen[keep] {
			seen[keep] = true
			result = append(result, keep)
		}
	}
	return result, nil
}
