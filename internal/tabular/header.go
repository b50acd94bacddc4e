package tabular

import (
	"fmt"
	"strings"
)

// Roles names the header columns the caller wants resolved. Folder and Photo
// are required; Secondary is optional and may be empty.
type Roles struct {
	Folder    string
	Photo     string
	Secondary string
}

// Mapping holds resolved zero-based field indices for each role. Secondary is
// -1 when the role was not requested or its column is absent.
type Mapping struct {
	Folder    int
	Photo     int
	Secondary int
}

// ColumnNotFoundError reports a required column missing from the header row.
type ColumnNotFoundError struct {
	Role string
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s column %q not found in header", e.Role, e.Name)
}

// ResolveColumns maps the requested roles onto header positions. Matching is
// case-insensitive and takes the first matching header field. A missing
// required role fails; a missing secondary role degrades to Secondary == -1
// so the caller can proceed with single-level folders.
func ResolveColumns(header []string, roles Roles) (Mapping, error) {
	mapping := Mapping{Folder: -1, Photo: -1, Secondary: -1}

	var err error
	if mapping.Folder, err = findColumn(header, "folder", roles.Folder); err != nil {
		return mapping, err
	}
	if mapping.Photo, err = findColumn(header, "photo", roles.Photo); err != nil {
		return mapping, err
	}
	if roles.Secondary != "" {
		mapping.Secondary = indexOfFold(header, roles.Secondary)
	}
	return mapping, nil
}

func findColumn(header []string, role, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return -1, &ColumnNotFoundError{Role: role, Name: name}
	}
	if idx := indexOfFold(header, name); idx >= 0 {
		return idx, nil
	}
	return -1, &ColumnNotFoundError{Role: role, Name: name}
}

func indexOfFold(header []string, name string) int {
	for i, field := range header {
		if strings.EqualFold(strings.TrimSpace(field), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}
