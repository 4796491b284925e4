package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"hiremate/internal/ai"
	"hiremate/internal/common"
	"hiremate/internal/errors"
	"hiremate/internal/resume"
	"hiremate/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [job-file] [resume-file]",
	Short: "Analyze how well a resume matches a job listing",
	Long: `Analyze how well a resume matches a job listing using AI.
The command takes two arguments: the path to a job listing file and the path
to a resume file. The job listing file is JSON with a "title" and a
"requirements" array. The resume file may be plain text, Markdown, PDF or DOCX.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

// jobListingFile is the on-disk shape of a job listing passed to the match command
type jobListingFile struct {
	Title        string   `json:"title"`
	Requirements []string `json:"requirements"`
}

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	processor := common.NewFileProcessor(logger)

	jobData, err := processor.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read job listing file: %w", err)
	}

	var listing jobListingFile
	if err := json.Unmarshal(jobData, &listing); err != nil {
		return errors.NewFormatError(errors.ErrCodeInvalidFormat,
			"Job listing file is not valid JSON", err)
	}
	if strings.TrimSpace(listing.Title) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job listing file is missing a title", nil)
	}

	resumeData, err := processor.ValidateAndReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	resumeText, err := resume.Extract(args[1], resumeData)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	matchAIConfig := cfg.GetMatchConfig()
	aiService, err := ai.NewService(&matchAIConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Provider.Close(); err != nil {
			logger.Warn("Failed to close AI provider", "error", err.Error())
		}
	}()

	logger.Info("Starting resume match analysis",
		"job_title", listing.Title,
		"requirements_count", len(listing.Requirements),
		"resume_chars", len(resumeText),
		"output_format", matchConfig.OutputFormat)

	outcome, tokenUsage, err := aiService.Analyze(cmd.Context(), types.MatchInput{
		JobTitle:     listing.Title,
		Requirements: listing.Requirements,
		Resume:       resumeText,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze resume match: %w", err)
	}

	if tokenUsage != nil {
		logger.Info("Token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(outcome, matchConfig); err != nil {
		return fmt.Errorf("failed to handle output: %w", err)
	}

	logger.Info("Resume match analysis completed successfully",
		"source", outcome.Source,
		"score", outcome.Analysis.Score)
	return nil
}
