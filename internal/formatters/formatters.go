package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hiremate/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchOutcome", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchOutcome", &MatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchOutcome:
		return "MatchOutcome"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// MatchTextFormatter handles text formatting for match outcomes
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutcome)
	if !ok {
		return "", fmt.Errorf("expected MatchOutcome, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME MATCH ANALYSIS ===\n\n")
	if result.Notice != "" {
		output.WriteString("NOTE: ")
		output.WriteString(result.Notice)
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", result.Analysis.Score))
	output.WriteString(fmt.Sprintf("Experience Match: %s\n", result.Analysis.ExperienceMatch))
	output.WriteString(fmt.Sprintf("Source: %s\n\n", result.Source))

	if len(result.Analysis.SkillsMatch) > 0 {
		output.WriteString("=== SKILLS ===\n")
		for _, skill := range result.Analysis.SkillsMatch {
			output.WriteString(fmt.Sprintf("- %s: %d/100\n", skill.Skill, skill.Match))
		}
		output.WriteString("\n")
	}

	if len(result.Analysis.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, recommendation := range result.Analysis.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchOutcome"
}

// MatchMarkdownFormatter handles markdown formatting for match outcomes
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutcome)
	if !ok {
		return "", fmt.Errorf("expected MatchOutcome, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Match Analysis\n\n")
	if result.Notice != "" {
		output.WriteString("> ")
		output.WriteString(result.Notice)
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.Analysis.Score))
	output.WriteString(fmt.Sprintf("**Experience Match:** %s\n\n", result.Analysis.ExperienceMatch))
	output.WriteString(fmt.Sprintf("**Source:** %s\n\n", result.Source))

	if len(result.Analysis.SkillsMatch) > 0 {
		output.WriteString("## Skills\n\n")
		output.WriteString("| Skill | Match |\n")
		output.WriteString("|-------|-------|\n")
		for _, skill := range result.Analysis.SkillsMatch {
			output.WriteString(fmt.Sprintf("| %s | %d/100 |\n", skill.Skill, skill.Match))
		}
		output.WriteString("\n")
	}

	if len(result.Analysis.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, recommendation := range result.Analysis.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchOutcome"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
