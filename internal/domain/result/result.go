// Package result assembles the result view of a finished diagnosis: match
// percentages, the podium, the remaining candidates and the share block.
package result

import (
	"errors"
	"fmt"

	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/matchscore"
	"github.com/okian/oshichecker/internal/domain/share"
)

// Entry is one ranked member as rendered on the result page.
type Entry struct {
	Rank         int    `json:"rank"`
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	GroupName    string `json:"group_name,omitempty"`
	BlogURL      string `json:"blog_url,omitempty"`
	MatchPercent *int   `json:"match_percent"`
}

// Share carries the pre-filled share text and compose URL.
type Share struct {
	Text      string `json:"text"`
	IntentURL string `json:"intent_url"`
}

// Result is the full result view.
type Result struct {
	Locale     locale.Locale `json:"locale"`
	Empty      bool          `json:"empty"`
	Message    string        `json:"message,omitempty"`
	Watermark  string        `json:"watermark,omitempty"`
	Podium     []Entry       `json:"podium"`
	AlsoRanked []Entry       `json:"also_ranked"`
	Share      *Share        `json:"share,omitempty"`
	FloorTies  int           `json:"-"`
	Cached     bool          `json:"-"`
}

// Scorer maps a ranking to match percentages.
type Scorer interface {
	MapDetailed(ranking []string) (matchscore.Outcome, error)
}

// Builder turns a ranking into a Result.
type Builder struct {
	catalog    *catalog.Catalog
	scorer     Scorer
	text       *share.TextBuilder
	podiumSize int
}

// NewBuilder wires a Builder. podiumSize below 1 uses DefaultPodiumSize.
func NewBuilder(c *catalog.Catalog, scorer Scorer, text *share.TextBuilder, podiumSize int) *Builder {
	if podiumSize < 1 {
		podiumSize = DefaultPodiumSize
	}
	if scorer == nil {
		scorer = matchscore.NewMemoMapper(nil, 0)
	}
	if text == nil {
		text = share.NewTextBuilder("")
	}
	return &Builder{catalog: c, scorer: scorer, text: text, podiumSize: podiumSize}
}

// PodiumSize returns the configured podium length.
func (b *Builder) PodiumSize() int { return b.podiumSize }

// Build resolves every id against the catalog, scores the full ranking once
// and then partitions it.
func (b *Builder) Build(l locale.Locale, ranking []string) (Result, error) {
	if len(ranking) == 0 {
		return Result{
			Locale:     l,
			Empty:      true,
			Message:    NoResultMessage(l),
			Podium:     []Entry{},
			AlsoRanked: []Entry{},
		}, nil
	}

	members, err := b.resolve(ranking)
	if err != nil {
		return Result{}, err
	}
	outcome, err := b.scorer.MapDetailed(ranking)
	if err != nil {
		return Result{}, err
	}

	entries := make([]Entry, len(members))
	for i, m := range members {
		entries[i] = b.entry(i+1, m, l, outcome.Scores)
	}

	podium, rest := Partition(entries, b.podiumSize)
	res := Result{
		Locale:     l,
		Watermark:  Watermark(l),
		Podium:     podium,
		AlsoRanked: rest,
		FloorTies:  outcome.FloorTies,
		Cached:     outcome.Cached,
	}
	top, _ := Partition(entries, share.MaxLines)
	text := b.text.Text(l, shareLines(top))
	res.Share = &Share{Text: text, IntentURL: share.IntentURL(text)}
	return res, nil
}

// ShareText renders only the share block for ranking. The ranking is
// validated like Build does.
func (b *Builder) ShareText(l locale.Locale, ranking []string) (Share, error) {
	members, err := b.resolve(ranking)
	if err != nil {
		return Share{}, err
	}
	if _, err := b.scorer.MapDetailed(ranking); err != nil {
		return Share{}, err
	}
	top, _ := Partition(members, share.MaxLines)
	lines := make([]share.Line, 0, len(top))
	for _, m := range top {
		lines = append(lines, share.Line{Name: m.Names.In(l), GroupName: b.catalog.GroupName(m, l)})
	}
	text := b.text.Text(l, lines)
	return Share{Text: text, IntentURL: share.IntentURL(text)}, nil
}

// resolve looks up every id before anything is scored, so rankings naming
// strangers never reach the score cache. Empty ids are left to the scorer.
func (b *Builder) resolve(ranking []string) ([]catalog.Member, error) {
	members := make([]catalog.Member, len(ranking))
	for i, id := range ranking {
		if id == "" {
			continue
		}
		m, err := b.catalog.Member(id)
		if err != nil {
			if errors.Is(err, catalog.ErrUnknownMember) {
				return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownMember, id, i+1)
			}
			return nil, err
		}
		members[i] = m
	}
	return members, nil
}

func (b *Builder) entry(rank int, m catalog.Member, l locale.Locale, scores matchscore.ScoreMap) Entry {
	e := Entry{
		Rank:      rank,
		MemberID:  m.ID,
		Name:      m.Names.In(l),
		GroupName: b.catalog.GroupName(m, l),
	}
	if g, ok := b.catalog.Group(m.GroupID); ok {
		e.BlogURL = g.BlogURL
	}
	if pct, ok := scores.Lookup(m.ID); ok {
		e.MatchPercent = &pct
	}
	return e
}

func shareLines(top []Entry) []share.Line {
	lines := make([]share.Line, 0, len(top))
	for _, e := range top {
		lines = append(lines, share.Line{Name: e.Name, GroupName: e.GroupName})
	}
	return lines
}
