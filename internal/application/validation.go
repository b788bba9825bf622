package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var localeRegex = regexp.MustCompile(`^[a-z]{2}(_[A-Za-z]{2,4})?$`)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "parentID" -> "parent ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "parentID" -> "parent ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":            "ID",
		"parentID":      "parent ID",
		"sourceID":      "source ID",
		"destinationID": "destination ID",
		"targetID":      "target ID",
		"newName":       "new name",
		"title":         "title",
		"locale":        "locale",
		"name":          "name",
		"path":          "path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateID checks that id is a node identifier (UUID).
// Returns a ValidationError if it is not.
func ValidateID(fieldName, id string) error {
	if err := ValidateRequired(fieldName, id); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s, got: %s", formatFieldName(fieldName), id),
		}
	}
	return nil
}

// ValidateLocale checks a locale code such as "en" or "de_AT"
func ValidateLocale(locale string) error {
	if err := ValidateRequired("locale", locale); err != nil {
		return err
	}
	if !localeRegex.MatchString(locale) {
		return &ValidationError{
			Field:   "locale",
			Message: fmt.Sprintf("invalid locale: %s", locale),
		}
	}
	return nil
}
