// Package indexer forwards accepted note content to the external search
// indexing service. Dispatch is fire-and-forget: reconciliation never waits
// on the indexer and never fails because of it.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

const requestTimeout = 10 * time.Second

type job struct {
	NoteID string `json:"note_id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Dispatcher buffers reindex requests on a channel drained by a single
// worker goroutine. When the buffer is full new jobs are dropped with a
// warning; the indexer rebuilds from stored notes, so a dropped job is lost
// freshness, not lost data.
type Dispatcher struct {
	url    string
	client *http.Client
	jobs   chan job
	log    *slog.Logger

	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(url string, queueSize int, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		jobs:   make(chan job, queueSize),
		log:    log.With("component", "indexer_dispatcher"),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// EnqueueReindex queues note content for indexing. Never blocks.
func (d *Dispatcher) EnqueueReindex(noteID, userID, title, text string) {
	select {
	case d.jobs <- job{NoteID: noteID, UserID: userID, Title: title, Text: text}:
	default:
		d.log.Warn("indexer queue full, dropping job", "note_id", noteID, "user_id", userID)
	}
}

// Close stops accepting jobs and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := d.post(j); err != nil {
			d.log.Warn("reindex dispatch failed", "note_id", j.NoteID, "error", err)
		}
	}
}

func (d *Dispatcher) post(j job) error {
	body, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post reindex: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("indexer responded %d", resp.StatusCode)
	}
	return nil
}
