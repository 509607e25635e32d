package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/oshichecker/pkg/logger"
)

const directoryPermission = 0o750

type scoresResponse struct {
	Scores map[string]int `json:"scores"`
}

type resultResponse struct {
	Empty  bool `json:"empty"`
	Podium []struct {
		Rank         int    `json:"rank"`
		MemberID     string `json:"member_id"`
		MatchPercent *int   `json:"match_percent"`
	} `json:"podium"`
	AlsoRanked []struct {
		Rank int `json:"rank"`
	} `json:"also_ranked"`
}

type catalogResponse struct {
	Members []struct {
		ID string `json:"id"`
	} `json:"members"`
}

// Run executes a complete probe against cfg.BaseURL. The returned error
// wraps ErrVerification when any case failed; Stats is returned either way
// once the run got past the health check.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	c := cfg.withDefaults()
	log := c.Logger
	stats := &Stats{StartTime: time.Now(), Seed: c.Seed}

	log.Info(ctx, "starting probe",
		logger.String("baseURL", c.BaseURL),
		logger.Int("rankings", c.Rankings),
		logger.Int("workers", c.Workers),
		logger.Any("seed", c.Seed))

	client := newHTTPClient(c.BaseURL, c.Timeout)

	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, err
	}

	ids, err := fetchCatalogIDs(ctx, client)
	if err != nil {
		log.Warn(ctx, "catalog unavailable, using synthetic rankings only", logger.Error(err))
	}
	stats.Candidates = len(ids)

	rng := rand.New(rand.NewPCG(c.Seed, c.Seed>>1|1))
	cases := generateCases(rng, c.Rankings, c.MaxCandidates, ids)

	runCases(ctx, client, c.Workers, cases, stats)

	if len(ids) > 0 {
		stats.Debounced = checkShareGuard(ctx, client, ids)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "probe finished",
		logger.Int("submitted", stats.Submitted),
		logger.Int("verified", stats.Verified),
		logger.Int("failed", stats.Failed),
		logger.Int("floorTies", stats.FloorTies),
		logger.Bool("shareDebounced", stats.Debounced),
		logger.Duration("duration", stats.Duration))

	if c.OutputFile != "" && len(stats.Failures) > 0 {
		if err := saveFailures(c.OutputFile, stats.Failures); err != nil {
			log.Warn(ctx, "failed to save failures", logger.Error(err))
		}
	}

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d cases", ErrVerification, stats.Failed, stats.Submitted)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	status, _, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

func fetchCatalogIDs(ctx context.Context, client *httpClient) ([]string, error) {
	status, body, err := client.get(ctx, "/api/v1/catalog")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog status %d", status)
	}
	var cat catalogResponse
	if err := json.Unmarshal(body, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	ids := make([]string, len(cat.Members))
	for i, m := range cat.Members {
		ids[i] = m.ID
	}
	return ids, nil
}

// runCases submits cases with a fixed worker pool and folds the outcomes
// into stats.
func runCases(ctx context.Context, client *httpClient, workers int, cases []Case, stats *Stats) {
	type outcome struct {
		ties    int
		failure *Failure
	}

	jobs := make(chan Case, workers*2)
	results := make(chan outcome, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				ties, err := checkCase(ctx, client, c)
				o := outcome{ties: ties}
				if err != nil {
					o.failure = &Failure{Case: c, Reason: err.Error()}
				}
				results <- o
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case jobs <- c:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for o := range results {
		stats.Submitted++
		if o.failure != nil {
			stats.Failed++
			stats.Failures = append(stats.Failures, *o.failure)
			continue
		}
		stats.Verified++
		stats.FloorTies += o.ties
	}
}

// checkCase verifies the scores of one case and, for catalog rankings, the
// result view built from the same ranking.
func checkCase(ctx context.Context, client *httpClient, c Case) (int, error) {
	status, body, err := client.postJSON(ctx, "/api/v1/scores", map[string]any{"ranking": c.Ranking})
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("scores status %d: %s", status, body)
	}
	var sr scoresResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return 0, fmt.Errorf("decode scores: %w", err)
	}
	ties, err := verifyScores(c.Ranking, sr.Scores)
	if err != nil || !c.Catalog {
		return ties, err
	}

	status, body, err = client.postJSON(ctx, "/api/v1/results", map[string]any{"ranking": c.Ranking})
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("results status %d: %s", status, body)
	}
	var rr resultResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return 0, fmt.Errorf("decode result: %w", err)
	}
	if len(rr.Podium)+len(rr.AlsoRanked) != len(c.Ranking) {
		return 0, fmt.Errorf("result lists %d entries for %d candidates", len(rr.Podium)+len(rr.AlsoRanked), len(c.Ranking))
	}
	for i, e := range rr.Podium {
		if e.MemberID != c.Ranking[i] || e.Rank != i+1 {
			return 0, fmt.Errorf("podium slot %d holds %q rank %d", i+1, e.MemberID, e.Rank)
		}
		if e.MatchPercent == nil || *e.MatchPercent != sr.Scores[e.MemberID] {
			return 0, fmt.Errorf("podium slot %d disagrees with the score map", i+1)
		}
	}
	if len(rr.AlsoRanked) > 0 && rr.AlsoRanked[0].Rank != len(rr.Podium)+1 {
		return 0, fmt.Errorf("also-ranked starts at %d", rr.AlsoRanked[0].Rank)
	}
	return ties, nil
}

// checkShareGuard reports whether an immediate second share from the same
// client is refused.
func checkShareGuard(ctx context.Context, client *httpClient, ids []string) bool {
	body := map[string]any{"ranking": ids[:1], "client_id": "probe-share-guard-" + time.Now().Format(time.RFC3339Nano)}
	first, _, err := client.postJSON(ctx, "/api/v1/share", body)
	if err != nil || first != http.StatusOK {
		return false
	}
	second, _, err := client.postJSON(ctx, "/api/v1/share", body)
	return err == nil && second == http.StatusTooManyRequests
}

// saveFailures writes failures as indented JSON.
func saveFailures(filename string, failures []Failure) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}
	return os.WriteFile(filename, raw, 0o600)
}
