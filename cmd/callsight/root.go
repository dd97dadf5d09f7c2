package main

import (
	"github.com/spf13/cobra"

	callsightlog "github.com/Manaskashy/callsight/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for callsight.
var rootCmd = &cobra.Command{
	Use:   "callsight",
	Short: "Analyze customer call transcripts with an LLM",
	Long: `Callsight sends customer call transcripts to the Groq chat-completions API
and records every analysis (summary, sentiment, token usage and latency) as one
row in a flat CSV log. Use 'callsight analyze' for one-off calls or
'callsight serve' for the web form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		callsightlog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
