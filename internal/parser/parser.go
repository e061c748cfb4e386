// Package parser pre-fills job description fields from unstructured text.
// It is a best-effort heuristic for a form the user can always edit, not an
// authoritative parse: it never fails, and a miss degrades to a default.
package parser

import (
	"regexp"
	"strings"

	"hireboard-api/pkg/models"
)

// DefaultTitle is used when no title pattern matches in the scanned lines.
const DefaultTitle = "Untitled Position"

const (
	titleLineLimit   = 5
	companyLineLimit = 10
)

// fieldPattern pairs a compiled pattern with its assignment behavior.
// An explicit-label pattern overwrites the candidate whenever it matches;
// fallback patterns only fill the field while it is still empty. Patterns
// are evaluated in order on every line, and scanning stops at the first line
// that leaves the field non-empty.
type fieldPattern struct {
	re          *regexp.Regexp
	fillIfEmpty bool
}

var titlePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)^(?:job title|position|role):\s*(.+)`)},
	{re: regexp.MustCompile(`(?i)^(.+?)\s*-\s*(?:job|position|role)`), fillIfEmpty: true},
	{re: regexp.MustCompile(`^([A-Z][^.!?]*(?i:engineer|developer|manager|analyst|specialist|coordinator|assistant|director|lead|senior|junior))`), fillIfEmpty: true},
}

var companyPatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)^(?:company|organization|employer):\s*(.+)`)},
	{re: regexp.MustCompile(`\b[aA]t\s+([A-Z][a-zA-Z\s&.,]+(?:Inc|LLC|Corp|Ltd|Company|Technologies|Solutions|Systems))`), fillIfEmpty: true},
	{re: regexp.MustCompile(`([A-Z][a-zA-Z\s&.,]+(?:Inc|LLC|Corp|Ltd|Company|Technologies|Solutions|Systems))`), fillIfEmpty: true},
}

// ParseJobDescription derives a best-effort {title, companyName, description}
// triple from plain text extracted out of an uploaded document. The
// description is always the trimmed input; title and company come from
// ordered pattern lists applied to the first few non-blank lines.
func ParseJobDescription(text string) models.ParsedJobDescription {
	lines := nonBlankLines(text)

	title := scanField(lines, titleLineLimit, titlePatterns)
	companyName := scanField(lines, companyLineLimit, companyPatterns)

	if title == "" {
		title = DefaultTitle
	}

	return models.ParsedJobDescription{
		Title:       title,
		CompanyName: companyName,
		Description: strings.TrimSpace(text),
	}
}

// scanField examines up to limit lines against the ordered pattern list.
// Every pattern is tried on each line; once any line ends with a non-empty
// candidate, later lines are never examined, even if they would match a
// higher-priority pattern.
func scanField(lines []string, limit int, patterns []fieldPattern) string {
	if len(lines) < limit {
		limit = len(lines)
	}

	value := ""
	for _, line := range lines[:limit] {
		for _, p := range patterns {
			if p.fillIfEmpty && value != "" {
				continue
			}
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if candidate := strings.TrimSpace(m[1]); candidate != "" {
				value = candidate
			}
		}
		if value != "" {
			break
		}
	}

	return value
}

// nonBlankLines splits the text on newlines and drops whitespace-only lines,
// keeping the remaining lines in original order and form.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
