package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

var (
	flagDocOwner string
	flagDocTitle string
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage user documents",
}

var docAddCmd = &cobra.Command{
	Use:   "add <path-text>",
	Short: "Register a user document for checking",
	Long: `Register a normalised text file as a ready user document. Extraction
from the raw upload happens outside plagd; only the text path is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocAdd,
}

var docShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a user document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocShow,
}

func init() {
	docAddCmd.Flags().StringVar(&flagDocOwner, "owner", "cli", "document owner")
	docAddCmd.Flags().StringVar(&flagDocTitle, "title", "", "document title (required)")
	_ = docAddCmd.MarkFlagRequired("title")

	docCmd.AddCommand(docAddCmd)
	docCmd.AddCommand(docShowCmd)
	rootCmd.AddCommand(docCmd)
}

func runDocAdd(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc := &domain.UserDocument{
		Owner:     flagDocOwner,
		Title:     flagDocTitle,
		MIMEType:  "text/plain",
		SizeBytes: info.Size(),
		Status:    domain.DocumentStatusReady,
		PathText:  args[0],
	}
	if err := store.DocumentStore().SaveDocument(cmd.Context(), doc); err != nil {
		return err
	}
	cmd.Printf("document %d added\n", doc.ID)
	return nil
}

func runDocShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("id must be an integer: %q", args[0])
	}

	doc, err := store.DocumentStore().GetDocument(cmd.Context(), id)
	if err != nil {
		return err
	}
	cmd.Printf("%4d  %-8s  %-10s  %s\n", doc.ID, doc.Status, doc.Owner, doc.Title)
	cmd.Printf("      text: %s (%d bytes)\n", doc.PathText, doc.SizeBytes)
	return nil
}
