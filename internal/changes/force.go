package changes

import "regexp"

// MatchesForceAll reports whether any changed file in diffOutput matches
// pattern. A nil pattern never matches.
func MatchesForceAll(diffOutput string, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return false
	}
	for _, line := range Lines(diffOutput) {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
