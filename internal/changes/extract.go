package changes

import (
	"fmt"
	"sync"
)

// maxProbes bounds the number of concurrent existence checks.
const maxProbes = 16

// Extract reduces diff output to the unique candidate directories that still
// exist in the workspace. Candidates removed by the change are dropped; any
// filesystem error other than non-existence is returned.
//
// A depth of 0 selects each file's parent directory. The result keeps the
// order in which candidates first appear in the diff.
func Extract(diffOutput string, depth int, checker PathChecker) ([]string, error) {
	seen := make(map[string]bool)
	var candidates []string
	for _, line := range Lines(diffOutput) {
		dir, ok := Reduce(line, depth)
		if !ok || seen[dir] {
			continue
		}
		seen[dir] = true
		candidates = append(candidates, dir)
	}

	exists := make([]bool, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxProbes)
	for i, dir := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, dir string) {
			defer func() {
				<-sem
				wg.Done()
			}()
			exists[i], errs[i] = checker.IsDir(dir)
		}(i, dir)
	}
	wg.Wait()

	result := make([]string, 0, len(candidates))
	for i, dir := range candidates {
		if errs[i] != nil {
			return nil, fmt.Errorf("checking directory %s: %w", dir, errs[i])
		}
		if exists[i] {
			result = append(result, dir)
		}
	}
	return result, nil
}
