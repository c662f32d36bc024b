package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// ScanRootSanitizer normalizes scan root inputs before repository discovery.
// It trims whitespace, expands the user's home directory, drops empty values,
// and prunes roots nested inside other provided roots so discovery never
// walks the same subtree twice.
type ScanRootSanitizer struct {
	homeExpander *HomeExpander
}

// NewScanRootSanitizer constructs a ScanRootSanitizer using the operating system home lookup.
func NewScanRootSanitizer() *ScanRootSanitizer {
	return NewScanRootSanitizerWithExpander(nil)
}

// NewScanRootSanitizerWithExpander constructs a ScanRootSanitizer using the provided expander.
func NewScanRootSanitizerWithExpander(homeExpander *HomeExpander) *ScanRootSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &ScanRootSanitizer{homeExpander: resolvedExpander}
}

// Sanitize returns the normalized scan roots, or nil when no usable root remains.
func (sanitizer *ScanRootSanitizer) Sanitize(candidateRoots []string) []string {
	expander := sanitizer.homeExpander
	if sanitizer == nil || expander == nil {
		expander = NewHomeExpander()
	}

	sanitizedRoots := make([]string, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}

		expandedRoot := expander.Expand(trimmedRoot)
		if len(expandedRoot) == 0 {
			continue
		}

		sanitizedRoots = append(sanitizedRoots, expandedRoot)
	}

	if len(sanitizedRoots) == 0 {
		return nil
	}

	return pruneNestedRoots(sanitizedRoots)
}

func pruneNestedRoots(candidateRoots []string) []string {
	type rootDetails struct {
		originalIndex int
		value         string
		canonical     string
		comparison    string
	}

	roots := make([]rootDetails, 0, len(candidateRoots))
	for index := range candidateRoots {
		canonicalRoot := canonicalizeRoot(candidateRoots[index])
		roots = append(roots, rootDetails{
			originalIndex: index,
			value:         candidateRoots[index],
			canonical:     canonicalRoot,
			comparison:    comparisonRoot(canonicalRoot),
		})
	}

	sort.SliceStable(roots, func(first int, second int) bool {
		firstLength := len(roots[first].comparison)
		secondLength := len(roots[second].comparison)
		if firstLength == secondLength {
			return roots[first].comparison < roots[second].comparison
		}
		return firstLength < secondLength
	})

	selected := make([]rootDetails, 0, len(roots))
	for _, candidate := range roots {
		skip := false
		for _, existing := range selected {
			if candidate.comparison == existing.comparison || isNestedRoot(existing.canonical, candidate.canonical) {
				skip = true
				break
			}
		}
		if !skip {
			selected = append(selected, candidate)
		}
	}

	sort.SliceStable(selected, func(first int, second int) bool {
		return selected[first].originalIndex < selected[second].originalIndex
	})

	prunedRoots := make([]string, 0, len(selected))
	for _, candidate := range selected {
		prunedRoots = append(prunedRoots, candidate.value)
	}
	return prunedRoots
}

func canonicalizeRoot(rootPath string) string {
	cleanedRoot := filepath.Clean(rootPath)
	absoluteRoot, absoluteError := filepath.Abs(cleanedRoot)
	if absoluteError == nil {
		return filepath.Clean(absoluteRoot)
	}
	return cleanedRoot
}

func comparisonRoot(rootPath string) string {
	comparison := filepath.Clean(rootPath)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}

func isNestedRoot(parentRoot string, candidateRoot string) bool {
	parentClean := comparisonRoot(parentRoot)
	candidateClean := comparisonRoot(candidateRoot)

	if candidateClean == parentClean {
		return true
	}
	if len(candidateClean) <= len(parentClean) {
		return false
	}
	if !strings.HasPrefix(candidateClean, parentClean) {
		return false
	}
	if parentClean[len(parentClean)-1] == os.PathSeparator {
		return true
	}
	return candidateClean[len(parentClean)] == os.PathSeparator
}
