package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/oshichecker/internal/probe"
	"github.com/okian/oshichecker/pkg/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	probeURL           string
	probeRankings      int
	probeMaxCandidates int
	probeWorkers       int
	probeSeed          uint64
	probeTimeout       time.Duration
	probeOutput        string
)

//nolint:gochecknoglobals // Cobra boilerplate
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Verify a running server against the local score mapper",
	Long: `probe submits generated rankings to a running oshichecker server from a pool
of workers and compares every returned score map with the local mapper. It also
checks that the share guard rejects an immediate second share from one client.`,
	Example: "  oshictl probe --url http://localhost:9080 --rankings 2000 --workers 16",
	RunE:    runProbe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVar(&probeURL, "url", "http://localhost:9080", "Base URL of the server")
	probeCmd.Flags().IntVar(&probeRankings, "rankings", probe.DefaultRankings, "Number of rankings to submit")
	probeCmd.Flags().IntVar(&probeMaxCandidates, "max-candidates", probe.DefaultMaxCandidates, "Longest synthetic ranking")
	probeCmd.Flags().IntVar(&probeWorkers, "workers", 8, "Concurrent workers")
	probeCmd.Flags().Uint64Var(&probeSeed, "seed", 0, "Generator seed (0 picks one from the clock)")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", probe.DefaultTimeout, "Per-request timeout")
	probeCmd.Flags().StringVarP(&probeOutput, "output", "o", "", "Write failed cases to this JSON file")
}

func runProbe(cmd *cobra.Command, _ []string) (err error) {
	stats, err := probe.Run(cmd.Context(), &probe.Config{
		BaseURL:       probeURL,
		Rankings:      probeRankings,
		MaxCandidates: probeMaxCandidates,
		Workers:       probeWorkers,
		Timeout:       probeTimeout,
		Seed:          probeSeed,
		OutputFile:    probeOutput,
		Logger:        logger.Named("probe"),
	})
	if stats != nil {
		printProbeStats(cmd, stats)
	}
	if err != nil {
		err = errors.Wrap(err, "probe failed")
	}
	return err
}

func printProbeStats(cmd *cobra.Command, s *probe.Stats) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "seed:       %d\n", s.Seed)
	_, _ = fmt.Fprintf(w, "candidates: %d\n", s.Candidates)
	_, _ = fmt.Fprintf(w, "submitted:  %d\n", s.Submitted)
	_, _ = fmt.Fprintf(w, "verified:   %d\n", s.Verified)
	_, _ = fmt.Fprintf(w, "failed:     %d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "floor ties: %d\n", s.FloorTies)
	_, _ = fmt.Fprintf(w, "debounced:  %t\n", s.Debounced)
	_, _ = fmt.Fprintf(w, "duration:   %s\n", s.Duration)
}
