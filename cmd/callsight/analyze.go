// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Manaskashy/callsight/internal/analyze"
	"github.com/Manaskashy/callsight/internal/calllog"
	"github.com/Manaskashy/callsight/internal/config"
	"github.com/Manaskashy/callsight/internal/llm"
)

// Analyze-specific flag values.
var (
	analyzeFile    string
	analyzeJSON    bool
	analyzeModel   string
	analyzeLogFile string
)

// analyzeCmd runs one transcript through the analyzer and appends a log row.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript]",
	Short: "Analyze one call transcript",
	Long: `Send a call transcript to the model and print its summary and sentiment.
The transcript comes from the argument, from --file, or from stdin when the
argument is "-". Every successful call appends exactly one row to the CSV log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the transcript from a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the logged record as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "override the configured model")
	analyzeCmd.Flags().StringVarP(&analyzeLogFile, "log-file", "o", "", "override the CSV log path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	transcript, err := resolveTranscript(cmd, args)
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	model := cfg.Model
	if analyzeModel != "" {
		model = analyzeModel
	}
	logPath := cfg.LogFile
	if analyzeLogFile != "" {
		logPath = analyzeLogFile
	}

	opts := []llm.GroqOption{llm.WithModel(model)}
	if cfg.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}

	provider, err := llm.NewGroqProvider(opts...)
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	analyzer := analyze.New(provider)

	slog.Debug("analyzing transcript", "model", model, "bytes", len(transcript))
	result, err := analyzer.Analyze(cmd.Context(), transcript)
	if err != nil {
		return exitError(ExitAnalysis, "callsight: %v", err)
	}

	rec, err := calllog.New(logPath).Append(calllog.Record{
		Model:            result.Model,
		Transcript:       transcript,
		Summary:          result.Summary,
		Sentiment:        string(result.Sentiment),
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
		LatencyMS:        result.Latency.Milliseconds(),
	})
	if err != nil {
		return exitError(ExitLogWrite, "callsight: analysis succeeded but logging failed: %v", err)
	}

	if analyzeJSON {
		return printRecordJSON(cmd.OutOrStdout(), rec)
	}

	printAnalysis(cmd.OutOrStdout(), result, logPath)
	return nil
}

// resolveTranscript picks the transcript source: --file first, then the
// positional argument ("-" means stdin).
func resolveTranscript(cmd *cobra.Command, args []string) (string, error) {
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile) //nolint:gosec // user-chosen path
		if err != nil {
			return "", fmt.Errorf("read transcript file: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("transcript required: pass it as an argument, via --file, or as \"-\" for stdin")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return args[0], nil
}

func printAnalysis(w io.Writer, result *analyze.Analysis, logPath string) {
	bold := color.New(color.Bold)

	fmt.Fprintln(w, bold.Sprint("Summary"))
	fmt.Fprintf(w, "  %s\n\n", result.Summary)
	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Sentiment:"), colorSentiment(string(result.Sentiment)))
	fmt.Fprintf(w, "\nmodel %s | tokens %d/%d/%d | %s | saved to %s\n",
		result.Model,
		result.Usage.PromptTokens,
		result.Usage.CompletionTokens,
		result.Usage.TotalTokens,
		result.Latency.Round(time.Millisecond),
		logPath,
	)
}

func printRecordJSON(w io.Writer, rec calllog.Record) error {
	out := map[string]any{
		"id":                rec.ID,
		"timestamp":         rec.Timestamp.Format(time.RFC3339),
		"model":             rec.Model,
		"transcript":        rec.Transcript,
		"summary":           rec.Summary,
		"sentiment":         rec.Sentiment,
		"prompt_tokens":     rec.PromptTokens,
		"completion_tokens": rec.CompletionTokens,
		"total_tokens":      rec.TotalTokens,
		"latency_ms":        rec.LatencyMS,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// colorSentiment colors the sentiment label for terminal output.
func colorSentiment(val string) string {
	switch val {
	case "Positive":
		return color.New(color.FgGreen).Sprint(val)
	case "Negative":
		return color.New(color.FgRed).Sprint(val)
	case "Neutral":
		return color.New(color.FgYellow).Sprint(val)
	default:
		return val
	}
}
