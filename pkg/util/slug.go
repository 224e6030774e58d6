package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9]+`)
	innerWhitespace = regexp.MustCompile(`\s+`)
)

// TenantSlug derives a URL-safe slug from an organization name: lowercase,
// non-alphanumeric runs collapsed to a single hyphen, leading/trailing
// hyphens stripped. An empty result falls back to "company". A short
// time-derived suffix reduces (does not guarantee) collision risk; the
// unique constraint on the slug column is authoritative.
func TenantSlug(name string) string {
	base := slugify(name, "-")
	if base == "" {
		base = "company"
	}
	return fmt.Sprintf("%s-%s", base, timeSuffix(6))
}

// ReplyShortcut derives a shortcut token from a quick-reply title, using
// underscores and capped at 40 characters before the suffix.
func ReplyShortcut(title string) string {
	base := slugify(title, "_")
	if len(base) > 40 {
		base = base[:40]
		base = strings.Trim(base, "_")
	}
	if base == "" {
		base = "reply"
	}
	return fmt.Sprintf("%s_%s", base, timeSuffix(5))
}

// NormalizeEmail canonicalizes an email address for lookup and storage:
// surrounding whitespace trimmed, lowercased. Uniqueness checks always run
// against this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FullName joins first and last name with a single space, collapsing any
// extra whitespace inside either part.
func FullName(first, last string) string {
	joined := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	return innerWhitespace.ReplaceAllString(joined, " ")
}

func slugify(s, sep string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, sep)
	return strings.Trim(slug, sep)
}

func timeSuffix(digits int) string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ms) > digits {
		ms = ms[len(ms)-digits:]
	}
	return ms
}
