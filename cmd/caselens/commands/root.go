// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all caselens CLI operations
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	format  string
)

const banner = `
 ██████╗ █████╗ ███████╗███████╗██╗     ███████╗███╗   ██╗███████╗
██╔════╝██╔══██╗██╔════╝██╔════╝██║     ██╔════╝████╗  ██║██╔════╝
██║     ███████║███████╗█████╗  ██║     █████╗  ██╔██╗ ██║███████╗
██║     ██╔══██║╚════██║██╔══╝  ██║     ██╔══╝  ██║╚██╗██║╚════██║
╚██████╗██║  ██║███████║███████╗███████╗███████╗██║ ╚████║███████║
 ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caselens",
		Short: "Grounded Q&A and rules-based recommendations over case documents",
		Long: banner + `
CaseLens indexes a corpus of case documents (PDF, text, markdown),
answers questions grounded strictly in those documents with
(filename, page) citations, and computes transparent rules-based
Buy/Hold/Avoid recommendations from market metrics.

Documents are chunked into overlapping token windows, embedded in
batches, and stored in a local SQLite index. Answers never draw on
outside knowledge: when the documents cannot support an answer, the
response says so instead of guessing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, text, or json")

	cmd.AddCommand(
		NewIngestCmd(),
		NewAskCmd(),
		NewRecommendCmd(),
		NewStatsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
