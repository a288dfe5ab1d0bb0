package commands

import (
	"context"
	"sort"
	"strings"

	"novella/internal/application"
	"novella/internal/domain"
)

// SearchHit is a paragraph matching a query
type SearchHit struct {
	Position     domain.Position
	Number       string
	EpisodeTitle string
	MatchedText  string
}

// SearchResult wraps SearchHit with a relevance score
type SearchResult struct {
	SearchHit
	Score int
}

// SearchCommand searches the paragraphs the reader has unlocked
type SearchCommand struct {
	session *application.Session
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(session *application.Session, query string) *SearchCommand {
	return &SearchCommand{
		session: session,
		Query:   query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	return FuzzySort(Reachable(c.session.Novel(), c.session.Profile()), c.Query), nil
}

// Reachable lists every accessible paragraph with its searchable text
func Reachable(n *domain.Novel, p domain.Profile) []SearchHit {
	var hits []SearchHit
	for _, ep := range n.Episodes {
		for i, par := range ep.Paragraphs {
			if !domain.IsParagraphAccessible(p, ep.ID, i) || !domain.IsParagraphVisible(par, p.ActivePaths) {
				continue
			}
			text := domain.Snapshot(n, p.MoveTo(domain.Position{EpisodeID: ep.ID, ParagraphIndex: i})).Text
			if text == "" {
				continue
			}
			hits = append(hits, SearchHit{
				Position:     domain.Position{EpisodeID: ep.ID, ParagraphIndex: i},
				Number:       n.ParagraphNumber(ep.ID, i),
				EpisodeTitle: ep.Title,
				MatchedText:  text,
			})
		}
	}
	return hits
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort sorts search hits by relevance to the query
func FuzzySort(hits []SearchHit, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(hits))

	for _, h := range hits {
		s1 := FuzzyScore(h.Number, query)
		s2 := FuzzyScore(h.EpisodeTitle, query)
		s3 := FuzzyScore(h.MatchedText, query)

		best := max(s1, s2, s3)

		if best > 0 {
			scored = append(scored, SearchResult{
				SearchHit: h,
				Score:     best,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
