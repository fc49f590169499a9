package query

import "strings"

// SortKeys maps accepted sort_by values to the columns they order by.
// A key matches bare ("email"), ascending ("email.asc") or descending
// ("email.desc").
type SortKeys map[string]string

// Resolve turns a raw sort_by value into an ORDER BY expression. An
// unknown key resolves to no sort at all rather than erroring, matching
// the listing behavior callers already rely on; it is never passed
// through to the storage layer.
func (s SortKeys) Resolve(raw string) (string, bool) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", false
	}

	dir := "ASC"
	if strings.HasSuffix(key, ".desc") {
		dir = "DESC"
		key = strings.TrimSuffix(key, ".desc")
	} else {
		key = strings.TrimSuffix(key, ".asc")
	}

	column, ok := s[key]
	if !ok {
		return "", false
	}
	return column + " " + dir, true
}
