// Package scorestore implements the client for the remote leaderboard
// service. Every operation round-trips to the store; there is no local
// cache and no retry. Concurrent operations against the same player are
// not serialized client-side, so two racing EnsureExists calls for an
// unseen name can both create a record. Last write wins at the store.
package scorestore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"scoresync/pkg/clock"
	"scoresync/pkg/logger"
	"scoresync/pkg/metrics"
	"scoresync/pkg/record"
	"scoresync/pkg/transport"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 10
)

// Config holds the store client settings
type Config struct {
	BaseURL string
	// PageSize is the page size used by the player search, the largest
	// the store is assumed to honor.
	PageSize int
	// MaxPages bounds the search as a runaway-request guard.
	MaxPages int
}

// Store is the remote score store client
type Store struct {
	baseURL  string
	client   *transport.Client
	stamper  *clock.Stamper
	logger   *logger.Logger
	pageSize int
	maxPages int
}

// New creates a Store client
func New(cfg Config, client *transport.Client, stamper *clock.Stamper, l *logger.Logger) *Store {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Store{
		baseURL:  cfg.BaseURL,
		client:   client,
		stamper:  stamper,
		logger:   l,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// GetLeaderboardPage fetches one page of the leaderboard. The total-count
// hint comes from the X-Total-Count header, -1 when absent.
func (s *Store) GetLeaderboardPage(ctx context.Context, page, pageSize int) (record.LeaderboardPage, error) {
	u := fmt.Sprintf("%s/api/scores?page=%d&pageSize=%d", s.baseURL, page, pageSize)
	resp, err := s.client.Do(ctx, "GET", u, nil)
	if err != nil {
		return record.LeaderboardPage{Total: -1}, err
	}
	if !resp.OK() {
		return record.LeaderboardPage{Total: -1}, fmt.Errorf("list request returned status %d", resp.StatusCode)
	}

	records, err := record.DecodePage(resp.Body)
	if err != nil {
		metrics.StoreDecodeFailuresTotal.Inc()
		s.logger.Warn("failed to decode leaderboard page", zap.Int("page", page), zap.Error(err))
		return record.LeaderboardPage{Total: -1}, err
	}

	total := -1
	if h := resp.Header.Get("X-Total-Count"); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			total = n
		}
	}
	return record.LeaderboardPage{Records: records, Total: total}, nil
}

// FindByName locates a player's record with a paginated linear scan.
// The match is case-sensitive and ordinal: names differing only in
// letter case are distinct players. Returns (nil, nil) when no record
// matches; a short page is treated as the last page.
func (s *Store) FindByName(ctx context.Context, name string) (*record.ScoreRecord, error) {
	for page := 1; page <= s.maxPages; page++ {
		lp, err := s.GetLeaderboardPage(ctx, page, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("search aborted on page %d: %w", page, err)
		}
		metrics.StoreSearchPagesTotal.Inc()

		for i := range lp.Records {
			if lp.Records[i].PlayerName == name {
				rec := lp.Records[i]
				return &rec, nil
			}
		}
		if len(lp.Records) < s.pageSize {
			break
		}
	}
	return nil, nil
}

// rankURL builds the rank-lookup URL with the name path-escaped
func (s *Store) rankURL(name string) string {
	return s.baseURL + "/api/scores/rank/" + url.PathEscape(name)
}

func (s *Store) recordURL(id int) string {
	return fmt.Sprintf("%s/api/scores/%d", s.baseURL, id)
}
