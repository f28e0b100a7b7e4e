package services

import (
	"fmt"
	"regexp"
	"strings"
)

// snapshotColumns are the snapshot fields a filter or order may name.
var snapshotColumns = map[string]string{
	"id":           "id",
	"project_id":   "project_id",
	"category":     "category",
	"folder":       "folder",
	"base_name":    "base_name",
	"extension":    "extension",
	"version":      "version",
	"active_path":  "active_path",
	"history_path": "history_path",
	"action":       "action",
	"sha256":       "sha256",
	"size":         "size",
	"created_at":   "created_at",
}

var (
	comparisonRegex = regexp.MustCompile(`(?i)(\w+)\s+(eq|ne|gt|ge|lt|le|startswith|contains|endswith)\s+['"]([^'"]*)['"]`)
	connectivesOnly = regexp.MustCompile(`^(?i)(\s|\(|\)|\x00|\bAND\b|\bOR\b|\bNOT\b)*$`)
)

const comparisonMarker = "\x00"

// ParseFilter turns an OData style filter such as
// "category eq 'rig_char' and version ge '3'" into a parameterized WHERE
// clause. Unknown columns and operators are rejected, and so is anything
// between comparisons other than and/or/not and parentheses.
func ParseFilter(filter string) (string, []interface{}, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return "", nil, nil
	}
	var params []interface{}
	var exprs []string
	var parseErr error

	skeleton := comparisonRegex.ReplaceAllStringFunc(filter, func(match string) string {
		matches := comparisonRegex.FindStringSubmatch(match)
		column, ok := snapshotColumns[strings.ToLower(matches[1])]
		if !ok {
			parseErr = fmt.Errorf("%w: unknown filter field %q", ErrInvalidInput, matches[1])
			return match
		}
		value := matches[3]

		var sqlExpr string
		switch strings.ToLower(matches[2]) {
		case "eq":
			sqlExpr = fmt.Sprintf("%s = ?", column)
			params = append(params, value)
		case "ne":
			sqlExpr = fmt.Sprintf("%s != ?", column)
			params = append(params, value)
		case "gt":
			sqlExpr = fmt.Sprintf("%s > ?", column)
			params = append(params, value)
		case "ge":
			sqlExpr = fmt.Sprintf("%s >= ?", column)
			params = append(params, value)
		case "lt":
			sqlExpr = fmt.Sprintf("%s < ?", column)
			params = append(params, value)
		case "le":
			sqlExpr = fmt.Sprintf("%s <= ?", column)
			params = append(params, value)
		case "startswith":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, value+"%")
		case "contains":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, "%"+value+"%")
		case "endswith":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, "%"+value)
		}
		exprs = append(exprs, sqlExpr)
		return comparisonMarker
	})
	if parseErr != nil {
		return "", nil, parseErr
	}
	if len(exprs) == 0 || !connectivesOnly.MatchString(skeleton) {
		return "", nil, fmt.Errorf("%w: malformed filter", ErrInvalidInput)
	}

	// Only connectives remain around the markers.
	skeleton = strings.ToUpper(skeleton)
	var clause strings.Builder
	next := 0
	for _, r := range skeleton {
		if string(r) == comparisonMarker {
			clause.WriteString(exprs[next])
			next++
			continue
		}
		clause.WriteRune(r)
	}
	return clause.String(), params, nil
}

// ParseOrder accepts "field [asc|desc]" pairs separated by commas.
func ParseOrder(order string) (string, error) {
	order = strings.TrimSpace(order)
	if order == "" {
		return "id", nil
	}
	var parts []string
	for _, term := range strings.Split(order, ",") {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 {
			return "", fmt.Errorf("%w: bad order term %q", ErrInvalidInput, term)
		}
		column, ok := snapshotColumns[strings.ToLower(fields[0])]
		if !ok {
			return "", fmt.Errorf("%w: unknown order field %q", ErrInvalidInput, fields[0])
		}
		direction := "asc"
		if len(fields) == 2 {
			direction = strings.ToLower(fields[1])
			if direction != "asc" && direction != "desc" {
				return "", fmt.Errorf("%w: bad order direction %q", ErrInvalidInput, fields[1])
			}
		}
		parts = append(parts, column+" "+direction)
	}
	return strings.Join(parts, ", "), nil
}
