package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
)

var flagMaxCandidates int

var checkCmd = &cobra.Command{
	Use:   "check <doc-id>",
	Short: "Run a plagiarism check on a document",
	Long: `Run the full pipeline for one user document against the active corpus
and print the persisted outcome.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagMaxCandidates, "max-candidates", 0, "cap on exact comparisons (0 = default)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("doc-id must be an integer: %q", args[0])
	}

	out, err := checkService.RunCheck(cmd.Context(), driving.RunCheckInput{
		DocID:         docID,
		RequestedBy:   "cli",
		MaxCandidates: flagMaxCandidates,
	})
	if err != nil {
		return err
	}

	cmd.Printf("check %d done\n", out.CheckID)
	cmd.Printf("  similarity: %.2f%%\n", out.Similarity)
	cmd.Printf("  threshold:  %.2f\n", out.Threshold)
	cmd.Printf("  candidates: %d\n", out.CandidatesCount)
	cmd.Printf("  matches:    %d\n", out.MatchesInserted)
	return nil
}
