package persistence

import "strings"

// ValidateSortField validates a sort field against a whitelist of allowed
// column names, returning the default when the field is not allowed.
// Sort fields come from query strings and are interpolated into ORDER BY,
// so anything outside the whitelist is rejected.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	sortField = strings.TrimSpace(strings.ToLower(sortField))
	if sortField == "" || !allowedFields[sortField] {
		return defaultField
	}
	return sortField
}

// NormalizeSortDirection returns "DESC" for any spelling of descending,
// "ASC" otherwise.
func NormalizeSortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return "DESC"
	}
	return "ASC"
}
