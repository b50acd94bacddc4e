package imageindex

import (
	"os"
	"path/filepath"
	"strings"
)

// inferExtensions is the candidate list tried, in order, for requests that
// arrive without an extension.
var inferExtensions = []string{"jpg", "jpeg", "png", "gif", "tiff", "heic"}

// Resolve locates the best-matching indexed file for a requested name, which
// may lack an extension or use different casing. The stages run in order and
// the first success wins:
//
//  1. root/name exists on disk as given.
//  2. No extension on the request: try name.ext for each candidate extension
//     against the index, lowercased.
//  3. Case-insensitive exact match against the index.
//  4. Case-insensitive prefix match against indexed filenames that contain an
//     extension separator, in traversal order.
//
// The returned path is root-relative. ok is false when every stage fails.
func (idx *Index) Resolve(name string) (relPath string, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	if _, err := os.Stat(filepath.Join(idx.root, name)); err == nil {
		return name, true
	}

	if filepath.Ext(name) == "" {
		lower := strings.ToLower(name)
		for _, ext := range inferExtensions {
			if rel, hit := idx.byLower[lower+"."+ext]; hit {
				return rel, true
			}
		}
	}

	if rel, hit := idx.byLower[strings.ToLower(name)]; hit {
		return rel, true
	}

	lower := strings.ToLower(name)
	for _, entry := range idx.entries {
		if strings.HasPrefix(strings.ToLower(entry.Name), lower) && strings.Contains(entry.Name, ".") {
			return entry.RelPath, true
		}
	}

	return "", false
}
