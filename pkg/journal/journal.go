// Package journal persists score submissions that have not yet been
// confirmed by the remote store, so a crash between enqueue and upsert
// does not lose the score. Entries are replayed once at service start;
// there is no in-process retry of a failed submission.
package journal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Entry is one pending score submission
type Entry struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	QueuedAt   string `json:"queuedAt"`
}

// Journal defines the interface for persisting pending submissions
type Journal interface {
	// Append persists an entry
	Append(ctx context.Context, e Entry) error

	// Load retrieves all pending entries. Returns nil if none exist.
	Load(ctx context.Context) ([]Entry, error)

	// Remove drops the entry with the given ID, if present
	Remove(ctx context.Context, id string) error

	// Close releases the backing resource
	Close() error
}

// FileJournal implements Journal using a local JSON-lines file
type FileJournal struct {
	mu   sync.Mutex
	path string
}

func NewFileJournal(path string) *FileJournal {
	return &FileJournal{path: path}
}

func (j *FileJournal) Append(ctx context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

func (j *FileJournal) Load(ctx context.Context) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readAll()
}

func (j *FileJournal) Remove(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.readAll()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	var buf bytes.Buffer
	for _, e := range kept {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal journal entry: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(j.path, buf.Bytes(), 0644)
}

func (j *FileJournal) Close() error {
	return nil
}

func (j *FileJournal) readAll() ([]Entry, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("corrupt journal line: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// RedisJournal implements Journal using a Redis hash
type RedisJournal struct {
	client *redis.Client
	key    string
}

func NewRedisJournal(client *redis.Client, key string) *RedisJournal {
	return &RedisJournal{
		client: client,
		key:    key,
	}
}

func (j *RedisJournal) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	return j.client.HSet(ctx, j.key, e.ID, data).Err()
}

func (j *RedisJournal) Load(ctx context.Context) ([]Entry, error) {
	fields, err := j.client.HGetAll(ctx, j.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(fields))
	for _, raw := range fields {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("corrupt journal field: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (j *RedisJournal) Remove(ctx context.Context, id string) error {
	return j.client.HDel(ctx, j.key, id).Err()
}

func (j *RedisJournal) Close() error {
	return j.client.Close()
}
