package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

var (
	flagCorpusTitle      string
	flagCorpusSourceType string
	flagCorpusSourceRef  string
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the reference corpus",
	RunE:  runCorpusList,
}

var corpusAddCmd = &cobra.Command{
	Use:   "add <path-text>",
	Short: "Register a corpus document",
	Long:  `Register a normalised text file as an active corpus document.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusAdd,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus documents",
	RunE:  runCorpusList,
}

var corpusActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Include a document in future checks",
	Args:  cobra.ExactArgs(1),
	RunE:  corpusSetActive(true),
}

var corpusDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Exclude a document from future checks",
	Args:  cobra.ExactArgs(1),
	RunE:  corpusSetActive(false),
}

func init() {
	corpusAddCmd.Flags().StringVar(&flagCorpusTitle, "title", "", "document title (required)")
	corpusAddCmd.Flags().StringVar(&flagCorpusSourceType, "source-type", "upload", "source type: upload or url")
	corpusAddCmd.Flags().StringVar(&flagCorpusSourceRef, "source-ref", "", "origin reference, e.g. the URL")
	_ = corpusAddCmd.MarkFlagRequired("title")

	corpusCmd.AddCommand(corpusAddCmd)
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusActivateCmd)
	corpusCmd.AddCommand(corpusDeactivateCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusAdd(cmd *cobra.Command, args []string) error {
	id, err := corpusService.Add(cmd.Context(), domain.CorpusDocument{
		Title:      flagCorpusTitle,
		SourceType: domain.SourceType(flagCorpusSourceType),
		SourceRef:  flagCorpusSourceRef,
		PathText:   args[0],
		IsActive:   true,
	})
	if err != nil {
		return err
	}
	cmd.Printf("corpus document %d added\n", id)
	return nil
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	docs, err := corpusService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("corpus is empty")
		return nil
	}
	for _, doc := range docs {
		state := "inactive"
		if doc.IsActive {
			state = "active"
		}
		cmd.Printf("%4d  %-8s  %-6s  %s\n", doc.ID, state, doc.SourceType, doc.Title)
	}
	return nil
}

func corpusSetActive(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		if err := corpusService.SetActive(cmd.Context(), id, active); err != nil {
			return err
		}
		if active {
			cmd.Printf("corpus document %d activated\n", id)
		} else {
			cmd.Printf("corpus document %d deactivated\n", id)
		}
		return nil
	}
}
