package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobDescriptionLabeledFields(t *testing.T) {
	text := "Job Title: Senior Backend Engineer\nCompany: Acme Corp\nWe build things.\nApply today."

	result := ParseJobDescription(text)

	assert.Equal(t, "Senior Backend Engineer", result.Title)
	assert.Equal(t, "Acme Corp", result.CompanyName)
	assert.Equal(t, strings.TrimSpace(text), result.Description)
}

func TestParseJobDescriptionNoStructure(t *testing.T) {
	result := ParseJobDescription("We are looking for someone great.\nApply now.")

	assert.Equal(t, DefaultTitle, result.Title)
	assert.Equal(t, "", result.CompanyName)
}

func TestParseJobDescriptionLabelVariants(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		title string
	}{
		{"position label", "Position: Data Analyst", "Data Analyst"},
		{"role label", "role: Product Manager", "Product Manager"},
		{"case insensitive label", "JOB TITLE: DevOps Lead", "DevOps Lead"},
		{"separator form", "Senior Engineer - Position\nmore text", "Senior Engineer"},
		{"role noun phrase", "Staff Software Engineer\nGreat team.", "Staff Software Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseJobDescription(tt.text)
			assert.Equal(t, tt.title, result.Title)
		})
	}
}

func TestParseJobDescriptionCompanyVariants(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		company string
	}{
		{"employer label", "Employer: Globex Corporation\nhiring", "Globex Corporation"},
		{"at suffix form", "Work at Initech Systems today", "Initech Systems"},
		{"bare suffix form", "Umbrella Technologies is hiring", "Umbrella Technologies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseJobDescription(tt.text)
			assert.Equal(t, tt.company, result.CompanyName)
		})
	}
}

func TestParseJobDescriptionStopsAtFirstMatchingLine(t *testing.T) {
	// Line 1 matches a fallback pattern, so the explicit label on line 2 is
	// never examined.
	text := "Senior Rust Developer\nJob Title: Something Better\nCompany: Acme Inc"

	result := ParseJobDescription(text)

	assert.Equal(t, "Senior Rust Developer", result.Title)
}

func TestParseJobDescriptionLabelWinsWithinLine(t *testing.T) {
	// The line matches both the label pattern and the role-noun fallback;
	// the label capture must win because it is evaluated first.
	result := ParseJobDescription("Role: Backend Developer")

	assert.Equal(t, "Backend Developer", result.Title)
}

func TestParseJobDescriptionTitleWindowIsFiveLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "Job Title: Too Late"}
	result := ParseJobDescription(strings.Join(lines, "\n"))

	assert.Equal(t, DefaultTitle, result.Title)
}

func TestParseJobDescriptionCompanyWindowIsTenLines(t *testing.T) {
	lines := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		lines = append(lines, "filler line")
	}
	lines = append(lines, "Company: Hidden Inc")

	result := ParseJobDescription(strings.Join(lines, "\n"))

	assert.Equal(t, "", result.CompanyName)
}

func TestParseJobDescriptionSkipsBlankLines(t *testing.T) {
	text := "\n\n   \nJob Title: QA Specialist\n"

	result := ParseJobDescription(text)

	assert.Equal(t, "QA Specialist", result.Title)
}

func TestParseJobDescriptionDescriptionIsTrimmedInput(t *testing.T) {
	text := "  \nJob Title: X Engineer\nbody text\n  "

	result := ParseJobDescription(text)

	assert.Equal(t, "Job Title: X Engineer\nbody text", result.Description)
}

func TestParseJobDescriptionEmptyInput(t *testing.T) {
	result := ParseJobDescription("")

	assert.Equal(t, DefaultTitle, result.Title)
	assert.Equal(t, "", result.CompanyName)
	assert.Equal(t, "", result.Description)
}

func TestParseJobDescriptionIdempotent(t *testing.T) {
	text := "Job Title: Senior Backend Engineer\nCompany: Acme Corp\nLong body."

	first := ParseJobDescription(text)
	second := ParseJobDescription(text)

	assert.Equal(t, first, second)
}

func TestParseJobDescriptionNonEnglishText(t *testing.T) {
	result := ParseJobDescription("これは日本語のテキストです\n構造はありません")

	assert.Equal(t, DefaultTitle, result.Title)
	assert.Equal(t, "", result.CompanyName)
}
