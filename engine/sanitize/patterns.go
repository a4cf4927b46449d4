package sanitize

import "regexp"

type blockedPattern struct {
	name string
	re   *regexp.Regexp
}

// dangerousPatterns is the fixed injection blocklist: script tags,
// javascript: URIs, inline event-handler attributes, embedded-document tags,
// and eval-style calls.
var dangerousPatterns = []blockedPattern{
	{"script tag", regexp.MustCompile(`(?i)<\s*/?\s*script\b`)},
	{"javascript URI", regexp.MustCompile(`(?i)javascript\s*:`)},
	{"event handler attribute", regexp.MustCompile(`(?i)\bon\w+\s*=`)},
	{"embedded document tag", regexp.MustCompile(`(?i)<\s*(iframe|object|embed|form)\b`)},
	{"eval call", regexp.MustCompile(`(?i)\beval\s*\(`)},
	{"function constructor", regexp.MustCompile(`(?i)\bnew\s+Function\s*\(`)},
	{"string-argument timer", regexp.MustCompile(`(?i)\bset(?:Timeout|Interval)\s*\(\s*["']`)},
	{"data html URI", regexp.MustCompile(`(?i)\bdata\s*:\s*text/html`)},
}

func findDangerousPattern(text string) (string, bool) {
	for _, p := range dangerousPatterns {
		if p.re.MatchString(text) {
			return p.name, true
		}
	}
	return "", false
}
