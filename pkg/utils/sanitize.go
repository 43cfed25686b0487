package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail lowercases, trims and strips markup from email input.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = htmlTagRegex.ReplaceAllString(email, "")

	var result strings.Builder
	for _, r := range email {
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SanitizePhone keeps only characters meaningful in a phone number.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = htmlTagRegex.ReplaceAllString(phone, "")

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
