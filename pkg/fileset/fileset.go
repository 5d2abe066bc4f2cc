// Package fileset keeps the ordered list of source files a merge is built from.
package fileset

import "strings"

// Set is an insertion-ordered collection of file paths. Paths that differ only
// in letter case are treated as the same file.
type Set struct {
	paths []string            // Paths in merge order.
	index map[string]struct{} // Case-folded keys of paths, for duplicate checks.
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		paths: make([]string, 0),
		index: make(map[string]struct{}),
	}
}

func key(path string) string {
	return strings.ToLower(path)
}

// Add appends every path that is not already present and returns how many
// were appended. Existing entries keep their position.
func (s *Set) Add(paths ...string) int {
	added := 0
	for _, p := range paths {
		k := key(p)
		if _, exists := s.index[k]; exists {
			continue
		}
		s.index[k] = struct{}{}
		s.paths = append(s.paths, p)
		added++
	}
	return added
}

// Remove deletes the given paths. Paths that are not present are ignored.
func (s *Set) Remove(paths ...string) {
	drop := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		k := key(p)
		if _, exists := s.index[k]; exists {
			drop[k] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := s.paths[:0]
	for _, p := range s.paths {
		k := key(p)
		if _, gone := drop[k]; gone {
			delete(s.index, k)
			continue
		}
		kept = append(kept, p)
	}
	s.paths = kept
}

// Clear removes every path.
func (s *Set) Clear() {
	s.paths = make([]string, 0)
	s.index = make(map[string]struct{})
}

// Move relocates the entry at index by delta positions. The call is a no-op
// when index or index+delta falls outside the set.
func (s *Set) Move(index, delta int) {
	n := len(s.paths)
	if index < 0 || index >= n {
		return
	}
	target := index + delta
	if target < 0 || target >= n || target == index {
		return
	}

	p := s.paths[index]
	if target < index {
		copy(s.paths[target+1:index+1], s.paths[target:index])
	} else {
		copy(s.paths[index:target], s.paths[index+1:target+1])
	}
	s.paths[target] = p
}

// Snapshot returns a copy of the current order.
func (s *Set) Snapshot() []string {
	dup := make([]string, len(s.paths))
	copy(dup, s.paths)
	return dup
}

// Len returns the number of paths in the set.
func (s *Set) Len() int {
	return len(s.paths)
}

// Contains reports whether path is in the set, ignoring case.
func (s *Set) Contains(path string) bool {
	_, exists := s.index[key(path)]
	return exists
}

// IndexOf returns the position of path, or -1.
func (s *Set) IndexOf(path string) int {
	k := key(path)
	if _, exists := s.index[k]; !exists {
		return -1
	}
	for i, p := range s.paths {
		if key(p) == k {
			return i
		}
	}
	return -1
}
