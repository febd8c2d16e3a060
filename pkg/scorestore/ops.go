package scorestore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"scoresync/pkg/metrics"
	"scoresync/pkg/record"

	"go.uber.org/zap"
)

// EnsureExists returns the player's record, creating one with score 0
// when the player is not in the store. A found record is returned
// unchanged with no write. Not race-safe: two concurrent calls for the
// same unseen name can both create.
func (s *Store) EnsureExists(ctx context.Context, name string) (*record.ScoreRecord, error) {
	rec, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return s.create(ctx, name, 0)
}

// UpsertScore sets the player's score, creating the record if needed.
// CreatedAt is always refreshed to now, even when the score is
// unchanged. After a successful update the store's copy is re-fetched,
// since the update response may carry no body; if the re-fetch fails
// the locally mutated record is returned instead.
func (s *Store) UpsertScore(ctx context.Context, name string, score int) (*record.ScoreRecord, error) {
	rec, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return s.create(ctx, name, score)
	}

	rec.Score = score
	rec.CreatedAt = s.stamper.Now()

	body, err := record.EncodeRecord(*rec, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update body: %w", err)
	}
	resp, err := s.client.Do(ctx, "PUT", s.recordURL(rec.ID), body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("update request returned status %d", resp.StatusCode)
	}

	canonical, err := s.fetchByID(ctx, rec.ID)
	if err != nil {
		s.logger.Warn("post-update fetch failed, returning local record",
			zap.Int("id", rec.ID), zap.Error(err))
		return rec, nil
	}
	return canonical, nil
}

// Delete removes the player's record. A missing player is (false, nil)
// and issues no DELETE request.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	rec, err := s.FindByName(ctx, name)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	resp, err := s.client.Do(ctx, "DELETE", s.recordURL(rec.ID), nil)
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// GetRank fetches the player's rank summary. A blank or whitespace-only
// name short-circuits to (nil, nil) with no network call; a 404 from
// the store means the player is unranked.
func (s *Store) GetRank(ctx context.Context, name string) (*record.RankRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	resp, err := s.client.Do(ctx, "GET", s.rankURL(name), nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !resp.OK() {
		return nil, fmt.Errorf("rank request returned status %d", resp.StatusCode)
	}

	rank, err := record.DecodeRank(resp.Body)
	if err != nil {
		metrics.StoreDecodeFailuresTotal.Inc()
		s.logger.Warn("failed to decode rank record", zap.String("player", name), zap.Error(err))
		return nil, err
	}
	return &rank, nil
}

// create posts a new record with a freshly stamped timestamp
func (s *Store) create(ctx context.Context, name string, score int) (*record.ScoreRecord, error) {
	rec := record.ScoreRecord{
		PlayerName: name,
		Score:      score,
		CreatedAt:  s.stamper.Now(),
	}
	body, err := record.EncodeRecord(rec, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create body: %w", err)
	}

	resp, err := s.client.Do(ctx, "POST", s.baseURL+"/api/scores", body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("create request returned status %d", resp.StatusCode)
	}

	created, err := record.DecodeRecord(resp.Body)
	if err != nil {
		metrics.StoreDecodeFailuresTotal.Inc()
		s.logger.Warn("failed to decode created record", zap.String("player", name), zap.Error(err))
		return nil, err
	}
	return &created, nil
}

// fetchByID gets the canonical record after an update
func (s *Store) fetchByID(ctx context.Context, id int) (*record.ScoreRecord, error) {
	resp, err := s.client.Do(ctx, "GET", s.recordURL(id), nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("fetch request returned status %d", resp.StatusCode)
	}
	rec, err := record.DecodeRecord(resp.Body)
	if err != nil {
		metrics.StoreDecodeFailuresTotal.Inc()
		return nil, err
	}
	return &rec, nil
}
