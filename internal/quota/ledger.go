// Package quota provides the persisted daily call budget for upstream
// API usage, shared by all concurrent requests in the process.
package quota

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/interfaces"
	"github.com/kleinski/full-planes/internal/models"
)

// DefaultDailyLimit caps flight search API calls per calendar day.
const DefaultDailyLimit = 1000

// Ledger tracks consumed API calls in a JSON file. The stored count rolls
// over to zero when the stored date differs from the current day; the check
// happens lazily on each access, never via a timer.
type Ledger struct {
	path   string
	limit  int
	logger *common.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewLedger creates a ledger backed by the file at path.
func NewLedger(path string, dailyLimit int, logger *common.Logger) *Ledger {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Ledger{
		path:   path,
		limit:  dailyLimit,
		logger: logger,
		now:    time.Now,
	}
}

// Limit returns the configured daily limit.
func (l *Ledger) Limit() int {
	return l.limit
}

// load reads the persisted state, treating an absent, corrupt or
// stale-dated record as a fresh one for today.
func (l *Ledger) load(today string) models.QuotaState {
	state := models.QuotaState{Date: today}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn().Err(err).Msg("Quota file unreadable, assuming fresh quota")
		}
		return state
	}

	var stored models.QuotaState
	if err := json.Unmarshal(data, &stored); err != nil {
		l.logger.Warn().Err(err).Msg("Quota file corrupt, assuming fresh quota")
		return state
	}

	if stored.Date != today {
		l.logger.Info().Str("stored_date", stored.Date).Msg("New day, resetting API call quota")
		return state
	}

	return stored
}

// persist writes the state atomically via temp file + rename.
func (l *Ledger) persist(state models.QuotaState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal quota state: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create quota directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-quota-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Reserve consumes n calls from today's budget under mutual exclusion.
// It returns (false, nil) when the budget would be exceeded, leaving the
// persisted state untouched, and (false, err) when persisting the new count
// fails. Unmetered usage is never allowed.
func (l *Ledger) Reserve(n int) (bool, error) {
	if n <= 0 {
		return false, fmt.Errorf("reservation must be positive, got %d", n)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now().Format("2006-01-02")
	state := l.load(today)

	if state.Count+n > l.limit {
		l.logger.Warn().
			Int("count", state.Count).
			Int("requested", n).
			Int("limit", l.limit).
			Msg("Daily API call limit reached")
		return false, nil
	}

	state.Count += n
	if err := l.persist(state); err != nil {
		l.logger.Error().Err(err).Msg("Failed to persist quota state")
		return false, err
	}

	l.logger.Debug().
		Int("consumed", n).
		Int("count", state.Count).
		Msg("Consumed API call quota")

	return true, nil
}

// Remaining reports today's unused budget without consuming anything.
func (l *Ledger) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now().Format("2006-01-02")
	state := l.load(today)

	remaining := l.limit - state.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Ensure Ledger implements QuotaLedger
var _ interfaces.QuotaLedger = (*Ledger)(nil)
