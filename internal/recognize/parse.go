package recognize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"idextract/internal/document"
)

var (
	digitGroupRe = regexp.MustCompile(`\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	licenseRe    = regexp.MustCompile(`^[A-Z]{1,5}\d{5,8}[A-Z]{0,2}$`)
)

// parseFieldLines parses a line-oriented "field_name: value" response into a
// RawResult. Lines without a colon are skipped, a leading "- " bullet on the
// field name is stripped, and values get a best-effort cleanup of common OCR
// misreads. Every requested field is present in the result; those the
// response omitted are backfilled with document.NotFound, so a partially
// parseable response yields a partial result rather than a failure.
func parseFieldLines(text string, requested []string) RawResult {
	extracted := RawResult{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}

		name, value, _ := strings.Cut(line, ":")
		name = strings.TrimLeft(strings.TrimSpace(name), "- ")
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}

		if value != document.NotFound {
			value = cleanValue(name, value)
		}
		extracted[name] = value
	}

	for _, field := range requested {
		name := strings.TrimLeft(field, "- ")
		if _, ok := extracted[name]; !ok {
			extracted[name] = document.NotFound
		}
	}

	return extracted
}

// cleanValue corrects common OCR misreads in a field value and applies
// field-specific formatting fixes for dates and license numbers.
func cleanValue(name, value string) string {
	value = fixOCRMisreads(value)
	value = whitespaceRe.ReplaceAllString(value, " ")

	lower := strings.ToLower(name)

	// Re-render dates with exactly three digit groups as MM/DD/YYYY.
	if strings.Contains(lower, "date") || strings.Contains(lower, "dob") || strings.Contains(lower, "exp") {
		if groups := digitGroupRe.FindAllString(value, -1); len(groups) == 3 {
			month, errM := strconv.Atoi(groups[0])
			day, errD := strconv.Atoi(groups[1])
			if errM == nil && errD == nil {
				value = fmt.Sprintf("%02d/%02d/%s", month, day, groups[2])
			}
		}
	}

	// License numbers end in letters; a trailing O there is a misread zero
	// only when it precedes the final letter run.
	if strings.Contains(lower, "license") && licenseRe.MatchString(value) {
		value = fixTrailingO(value)
	}

	return strings.TrimSpace(value)
}

// fixOCRMisreads substitutes characters the OCR layer commonly confuses:
// O→0 and I→1 outside uppercase words, S→5 before a digit, B→8 between
// digits. Substitutions look at the original neighbors so a fix never
// cascades into the next one.
func fixOCRMisreads(s string) string {
	src := []rune(s)
	out := make([]rune, len(src))
	copy(out, src)

	isUpper := func(i int) bool {
		return i >= 0 && i < len(src) && src[i] >= 'A' && src[i] <= 'Z'
	}
	isDigit := func(i int) bool {
		return i >= 0 && i < len(src) && src[i] >= '0' && src[i] <= '9'
	}

	for i, r := range src {
		switch r {
		case 'O':
			if !isUpper(i-1) && !isUpper(i+1) {
				out[i] = '0'
			}
		case 'I':
			if !isUpper(i-1) && !isUpper(i+1) {
				out[i] = '1'
			}
		case 'S':
			if !isUpper(i-1) && isDigit(i+1) {
				out[i] = '5'
			}
		case 'B':
			if isDigit(i-1) && isDigit(i+1) {
				out[i] = '8'
			}
		}
	}

	return string(out)
}

// fixTrailingO replaces any O that is followed only by uppercase letters up
// to the end of the value, i.e. an O sitting in the numeric body just before
// the final letter run.
func fixTrailingO(s string) string {
	src := []rune(s)
	for i, r := range src {
		if r != 'O' {
			continue
		}
		tail := src[i+1:]
		onlyLetters := true
		for _, t := range tail {
			if t < 'A' || t > 'Z' {
				onlyLetters = false
				break
			}
		}
		if onlyLetters {
			src[i] = '0'
		}
	}
	return string(src)
}
