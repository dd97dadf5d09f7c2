package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Manaskashy/callsight/internal/calllog"
	"github.com/Manaskashy/callsight/internal/config"
	"github.com/Manaskashy/callsight/internal/render"
)

// History-specific flag values.
var (
	historyLimit   int
	historyJSON    bool
	historyLogFile string
)

// historyCmd lists logged calls.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List analyzed calls from the CSV log",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the most recent N calls (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON")
	historyCmd.Flags().StringVarP(&historyLogFile, "log-file", "o", "", "override the CSV log path")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	logPath := cfg.LogFile
	if historyLogFile != "" {
		logPath = historyLogFile
	}

	records, err := calllog.New(logPath).List()
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	// Newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	out := cmd.OutOrStdout()

	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		entries := make([]map[string]any, 0, len(records))
		for _, r := range records {
			entries = append(entries, map[string]any{
				"id":           r.ID,
				"timestamp":    r.Timestamp.Format(time.RFC3339),
				"model":        r.Model,
				"transcript":   r.Transcript,
				"summary":      r.Summary,
				"sentiment":    r.Sentiment,
				"total_tokens": r.TotalTokens,
				"latency_ms":   r.LatencyMS,
			})
		}
		return enc.Encode(entries)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "no calls logged in %s\n", logPath)
		return nil
	}

	tbl := render.NewTable(
		render.Column{Header: "WHEN"},
		render.Column{Header: "SENTIMENT", Color: render.ColorSentiment},
		render.Column{Header: "TOKENS", Align: render.AlignRight},
		render.Column{Header: "LATENCY", Align: render.AlignRight},
		render.Column{Header: "SUMMARY"},
	)
	for _, r := range records {
		tbl.AddRow(
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Sentiment,
			strconv.Itoa(r.TotalTokens),
			fmt.Sprintf("%dms", r.LatencyMS),
			render.Truncate(r.Summary, 60),
		)
	}
	if err := tbl.Render(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d call(s) in %s\n", len(records), logPath)
	return nil
}
