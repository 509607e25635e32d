package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/oshichecker/internal/domain/matchscore"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score <id>...",
	Short: "Print the match percentage of each ranked id",
	Long: `score maps the given ids, best first, to match percentages with the
default curve and prints them as a JSON object in ranking order.`,
	Example: "  oshictl score yuna mina haru",
	RunE:    runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
}

type scoredEntry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Score int    `json:"score"`
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	scores, err := matchscore.MapScores(args)
	if err != nil {
		err = errors.Wrap(err, "failed to map ranking")
		return err
	}

	out := make([]scoredEntry, 0, len(args))
	for i, id := range args {
		out = append(out, scoredEntry{Rank: i + 1, ID: id, Score: scores[id]})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	err = enc.Encode(out)
	if err != nil {
		err = errors.Wrap(err, "failed to write scores")
	}
	return err
}
