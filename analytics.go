package main

import (
	"database/sql"
	"log"
	"sync"
	"time"
)

// Combat event types
const (
	EvtImpact     = "impact"
	EvtExplosion  = "explosion"
	EvtDetonation = "detonation"
	EvtDestroyed  = "destroyed"
)

type analyticsEvent struct {
	CombatEvent
	Timestamp time.Time
}

// Analytics persists combat events with batched background writes
type Analytics struct {
	db     *DB
	events chan analyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup

	flushEvery time.Duration
	batchSize  int

	mu      sync.Mutex
	dropped int
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB) *Analytics {
	return newAnalytics(db, 5*time.Second, 50)
}

func newAnalytics(db *DB, flushEvery time.Duration, batchSize int) *Analytics {
	a := &Analytics{
		db:         db,
		events:     make(chan analyticsEvent, 1024),
		stop:       make(chan struct{}),
		flushEvery: flushEvery,
		batchSize:  batchSize,
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// TrackCombat enqueues an event for async persistence (non-blocking)
func (a *Analytics) TrackCombat(evt CombatEvent) {
	select {
	case a.events <- analyticsEvent{CombatEvent: evt, Timestamp: time.Now().UTC()}:
	default:
		// Channel full, drop event rather than blocking the tick
		a.mu.Lock()
		a.dropped++
		a.mu.Unlock()
	}
}

// Dropped returns how many events were discarded because the queue was full
func (a *Analytics) Dropped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// Stop gracefully shuts down the analytics writer, flushing queued events
func (a *Analytics) Stop() {
	close(a.stop)
	a.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]analyticsEvent, 0, a.batchSize)
	ticker := time.NewTicker(a.flushEvery)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= a.batchSize {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			// Drain remaining events
			for n := len(a.events); n > 0; n-- {
				batch = append(batch, <-a.events)
			}
			if len(batch) > 0 {
				a.flush(batch)
			}
			return
		}
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []analyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		log.Printf("analytics: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO combat_events (event_type, weapon, source_id, target_id, amount, x, y, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("analytics: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		src := sql.NullInt64{Int64: int64(evt.SourceID), Valid: evt.SourceID > 0}
		dst := sql.NullInt64{Int64: int64(evt.TargetID), Valid: evt.TargetID > 0}
		_, err := stmt.Exec(evt.Type, evt.Weapon, src, dst, evt.Amount, evt.X, evt.Y, evt.Timestamp.Format(time.RFC3339))
		if err != nil {
			log.Printf("analytics: insert error: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("analytics: commit error: %v", err)
	}
}

// EventCounts returns counts of each combat event type
func (a *Analytics) EventCounts() (map[string]int, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM combat_events
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			continue
		}
		result[evtType] = count
	}
	return result, rows.Err()
}

// DamageByWeapon returns the total damage dealt per weapon
func (a *Analytics) DamageByWeapon() (map[string]float64, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT weapon, SUM(amount) FROM combat_events
		WHERE event_type IN (?, ?)
		GROUP BY weapon
	`, EvtImpact, EvtExplosion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var weapon string
		var total float64
		if err := rows.Scan(&weapon, &total); err != nil {
			continue
		}
		result[weapon] = total
	}
	return result, rows.Err()
}
