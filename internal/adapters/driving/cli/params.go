package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

var (
	flagParamK         int
	flagParamW         int
	flagParamBase      int
	flagParamThreshold float64
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Manage algorithm parameters",
	RunE:  runParamsShow,
}

var paramsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Activate a new parameter tuple",
	Long: `Activate a new (k, w, threshold) tuple. The previous tuple is closed at
the activation instant; checks already running keep their snapshot.`,
	RunE: runParamsSet,
}

var paramsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active parameters and history",
	RunE:  runParamsShow,
}

func init() {
	paramsSetCmd.Flags().IntVar(&flagParamK, "k", 5, "k-gram length")
	paramsSetCmd.Flags().IntVar(&flagParamW, "w", 4, "winnowing window size")
	paramsSetCmd.Flags().IntVar(&flagParamBase, "base", 257, "rolling-hash base")
	paramsSetCmd.Flags().Float64Var(&flagParamThreshold, "threshold", 0.8, "span materialisation threshold")

	paramsCmd.AddCommand(paramsSetCmd)
	paramsCmd.AddCommand(paramsShowCmd)
	rootCmd.AddCommand(paramsCmd)
}

func runParamsSet(cmd *cobra.Command, _ []string) error {
	id, err := paramService.Set(cmd.Context(), domain.AlgorithmParams{
		K:          flagParamK,
		W:          flagParamW,
		Base:       flagParamBase,
		Threshold:  flagParamThreshold,
		ActiveFrom: time.Now(),
	})
	if err != nil {
		return err
	}
	cmd.Printf("params %d active: k=%d w=%d threshold=%.2f\n",
		id, flagParamK, flagParamW, flagParamThreshold)
	return nil
}

func runParamsShow(cmd *cobra.Command, _ []string) error {
	history, err := paramService.History(cmd.Context())
	if err != nil {
		return err
	}
	if len(history) == 0 {
		cmd.Println("no parameters set")
		return nil
	}
	for _, p := range history {
		until := "open"
		if p.ActiveTo != nil {
			until = p.ActiveTo.Format(time.RFC3339)
		}
		cmd.Printf("%4d  k=%d w=%d threshold=%.2f  from %s until %s\n",
			p.ID, p.K, p.W, p.Threshold, p.ActiveFrom.Format(time.RFC3339), until)
	}
	return nil
}
