// Package scheduler runs periodic database maintenance in the background.
package scheduler

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/sasfit/sasback/internal/models"
)

// DefaultInterval is the time between maintenance runs.
const DefaultInterval = 24 * time.Hour

// Status holds the result of the last maintenance run.
type Status struct {
	LastRun            time.Time `json:"last_run"`
	NextRun            time.Time `json:"next_run"`
	InteractionsPruned int64     `json:"interactions_pruned"`
	RetentionDays      int       `json:"retention_days"`
}

// Scheduler prunes assistant chat history older than the retention window.
type Scheduler struct {
	db        *sql.DB
	retention int
	interval  time.Duration
	now       func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu     sync.RWMutex
	status Status
}

// New creates a Scheduler keeping retentionDays of chat history.
func New(db *sql.DB, retentionDays int) *Scheduler {
	return &Scheduler{
		db:        db,
		retention: retentionDays,
		interval:  DefaultInterval,
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs one pass immediately and then one per interval until Stop.
func (s *Scheduler) Start() {
	go s.run()
	log.Printf("scheduler: started (retention %d days)", s.retention)
}

// Stop signals the scheduler to shut down and waits for it to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Status returns the result of the last maintenance run.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) run() {
	defer close(s.done)

	s.runMaintenance()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.runMaintenance()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runMaintenance() {
	now := s.now()
	pruned := s.pruneInteractions(now)

	s.mu.Lock()
	s.status = Status{
		LastRun:            now,
		NextRun:            now.Add(s.interval),
		InteractionsPruned: pruned,
		RetentionDays:      s.retention,
	}
	s.mu.Unlock()
}

// pruneInteractions deletes chat exchanges older than the retention window.
func (s *Scheduler) pruneInteractions(now time.Time) int64 {
	if s.retention <= 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -s.retention)
	deleted, err := models.DeleteInteractionsBefore(s.db, cutoff)
	if err != nil {
		log.Printf("scheduler: prune interactions: %v", err)
		return 0
	}
	if deleted > 0 {
		log.Printf("scheduler: pruned %d interaction(s) older than %s", deleted, cutoff.Format(models.DateLayout))
	}
	return deleted
}
