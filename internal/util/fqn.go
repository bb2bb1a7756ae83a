// Package util provides shared helpers for mwiz commands.
package util

import (
	"fmt"
	"strings"
)

// Review item ids are composite: a table is "<fqn>#table", a column is
// "<fqn>#column#<name>", where fqn is "project.dataset.table".
const (
	tableSuffix     = "#table"
	columnSeparator = "#column#"
)

// TableFQN joins table coordinates into a fully qualified name.
func TableFQN(projectID, datasetID, tableID string) string {
	return fmt.Sprintf("%s.%s.%s", projectID, datasetID, tableID)
}

// DatasetFQN joins dataset coordinates into a fully qualified name.
func DatasetFQN(projectID, datasetID string) string {
	return fmt.Sprintf("%s.%s", projectID, datasetID)
}

// SplitTableFQN splits "project.dataset.table" into its parts.
func SplitTableFQN(fqn string) (projectID, datasetID, tableID string, err error) {
	parts := strings.Split(fqn, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("invalid table FQN %q (want project.dataset.table)", fqn)
	}
	return parts[0], parts[1], parts[2], nil
}

// TableItemID returns the review item id for a table.
func TableItemID(fqn string) string {
	return fqn + tableSuffix
}

// ColumnItemID returns the review item id for a column of a table.
func ColumnItemID(fqn, column string) string {
	return fqn + columnSeparator + column
}

// ParseItemID splits a review item id into the table FQN and, for column
// items, the column name. For table items column is empty.
func ParseItemID(id string) (fqn, column string, err error) {
	switch {
	case strings.HasSuffix(id, tableSuffix):
		fqn = strings.TrimSuffix(id, tableSuffix)
	case strings.Contains(id, columnSeparator):
		idx := strings.Index(id, columnSeparator)
		fqn = id[:idx]
		column = id[idx+len(columnSeparator):]
		if column == "" {
			return "", "", fmt.Errorf("item id %q has empty column name", id)
		}
	default:
		return "", "", fmt.Errorf("unrecognized item id %q", id)
	}
	if _, _, _, err := SplitTableFQN(fqn); err != nil {
		return "", "", err
	}
	return fqn, column, nil
}

// IsColumnItemID reports whether the id names a column item.
func IsColumnItemID(id string) bool {
	return strings.Contains(id, columnSeparator)
}
