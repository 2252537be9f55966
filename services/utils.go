package services

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}

var titleCaser = cases.Title(language.English)

// DisplayLabel normalizes a user-entered category or occasion label for
// display: "cargo pants" and "CARGO PANTS" both become "Cargo Pants".
func DisplayLabel(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}
