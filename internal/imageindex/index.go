package imageindex

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions is the fixed allow-list of recognized image files.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".tiff": {},
	".bmp":  {},
	".heic": {},
}

// Entry is one indexed image file.
type Entry struct {
	// Name is the bare filename as it appears on disk.
	Name string
	// RelPath is the root-relative path, equal to Name for top-level files.
	RelPath string
}

// Index is a point-in-time snapshot of the image files under a root
// directory. It is not updated as files are moved during a run; callers must
// re-check the filesystem when acting on a hit.
type Index struct {
	root    string
	entries []Entry
	byLower map[string]string
}

// Build enumerates root and returns an index of recognized image files. When
// recursive is false only direct children are considered. Hidden files and
// directories (dot-prefixed) are skipped. Each file is keyed by its bare
// filename and, when nested, by its root-relative path.
func Build(root string, recursive bool) (*Index, error) {
	idx := &Index{root: root, byLower: make(map[string]string)}

	if !recursive {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range dirEntries {
			if entry.IsDir() || !entry.Type().IsRegular() {
				continue
			}
			idx.add(entry.Name(), entry.Name())
		}
		return idx, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		idx.add(d.Name(), strings.Trim(rel, string(filepath.Separator)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) add(name, relPath string) {
	if strings.HasPrefix(name, ".") {
		return
	}
	if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return
	}
	idx.entries = append(idx.entries, Entry{Name: name, RelPath: relPath})
	idx.key(name, relPath)
	if relPath != name {
		idx.key(relPath, relPath)
	}
}

// key records a lowercased lookup key; the first file wins on collisions.
func (idx *Index) key(raw, relPath string) {
	lower := strings.ToLower(raw)
	if _, ok := idx.byLower[lower]; !ok {
		idx.byLower[lower] = relPath
	}
}

// Root returns the directory the index was built from.
func (idx *Index) Root() string { return idx.root }

// Len returns the number of indexed files.
func (idx *Index) Len() int { return len(idx.entries) }

// Entries returns the indexed files in traversal order.
func (idx *Index) Entries() []Entry { return idx.entries }
