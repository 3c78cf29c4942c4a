package entities

import (
	"slices"
	"sort"
	"strings"
)

// SearchIndexPath is where an externally built reverse index is looked up.
const SearchIndexPath = ".search/index.json"

// SearchIndex is an externally produced reverse index, consumed read-only.
type SearchIndex struct {
	Tokens   map[string][]string `json:"tokens"`
	Tags     map[string][]string `json:"tags"`
	FileTags map[string][]string `json:"fileTags"`
}

// AllTags returns every tag known to the index, sorted.
func (ix *SearchIndex) AllTags() []string {
	if ix == nil {
		return nil
	}
	tags := make([]string, 0, len(ix.Tags))
	for tag := range ix.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagsForFile returns the tags of path.
func (ix *SearchIndex) TagsForFile(path string) []string {
	if ix == nil || ix.FileTags == nil {
		return nil
	}
	return ix.FileTags[path]
}

// FileHasTag reports whether path carries tag. An empty tag matches everything.
func (ix *SearchIndex) FileHasTag(path, tag string) bool {
	if tag == "" {
		return true
	}
	return slices.Contains(ix.TagsForFile(path), tag)
}

// FilterFiles narrows files to those matching query. With an index, a file
// matches when any whitespace-separated token of the query lists it or its
// path contains the query; without one only the path is compared.
func FilterFiles(files []FileEntry, query string, index *SearchIndex) []FileEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return files
	}
	hits := map[string]struct{}{}
	if index != nil {
		for _, token := range strings.Fields(q) {
			for _, path := range index.Tokens[token] {
				hits[path] = struct{}{}
			}
		}
	}
	var matched []FileEntry
	for _, file := range files {
		if _, ok := hits[file.Path]; ok || strings.Contains(strings.ToLower(file.Path), q) {
			matched = append(matched, file)
		}
	}
	return matched
}

// FilterByTags keeps files carrying every selected tag.
func FilterByTags(files []FileEntry, tags []string, index *SearchIndex) []FileEntry {
	if len(tags) == 0 {
		return files
	}
	var matched []FileEntry
	for _, file := range files {
		keep := true
		for _, tag := range tags {
			if !index.FileHasTag(file.Path, tag) {
				keep = false
				break
			}
		}
		if keep {
			matched = append(matched, file)
		}
	}
	return matched
}
