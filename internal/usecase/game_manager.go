package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
	"github.com/team-black-box/tici-taca-toey-server/internal/timer"
)

const archiveTimeout = 5 * time.Second

type matchArchive interface {
	Save(ctx context.Context, match entity.MatchView) error
}

type Options struct {
	Clock              clock.Clock
	TimePerPlayer      time.Duration
	IncrementPerPlayer time.Duration
	TickInterval       time.Duration
	MatchRetention     time.Duration
}

// GameManager owns every match and the roster of connected participants.
// All state changes go through Play under a single lock.
type GameManager struct {
	logger  *slog.Logger
	options Options
	archive matchArchive

	mu       sync.Mutex
	matches  map[string]*entity.Match
	roster   map[string]*entity.Participant
	archived map[string]struct{}
	closed   bool

	pending sync.WaitGroup
}

// NewGameManager builds an engine; archive may be nil.
func NewGameManager(logger *slog.Logger, archive matchArchive, options Options) *GameManager {
	if options.Clock == nil {
		options.Clock = clock.New()
	}

	if options.TickInterval <= 0 {
		options.TickInterval = timer.DefaultTickInterval
	}

	return &GameManager{
		logger:  logger.With("component", "game_manager"),
		options: options,
		archive: archive,

		matches:  make(map[string]*entity.Match),
		roster:   make(map[string]*entity.Participant),
		archived: make(map[string]struct{}),
	}
}

// Play validates the intent, applies it and notifies everyone affected.
// A rejected intent is reported to its requester and returned unchanged.
func (that *GameManager) Play(ctx context.Context, intent entity.Intent) error {
	log := that.logger.With("method", "Play", "type", intent.Type(), "player_id", intent.Requester())

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return nil
	}

	if err := that.validate(intent); err != nil {
		log.Debug("intent rejected", "error", err)
		that.notifyError(intent, err)

		return fmt.Errorf("invalid %s: %w", intent.Type(), err)
	}

	affected := that.transition(intent)
	that.notify(intent, affected)
	that.archiveFinished(ctx, affected)

	return nil
}

// Roster returns the profiles of all connected participants.
func (that *GameManager) Roster() []entity.Profile {
	that.mu.Lock()
	defer that.mu.Unlock()

	profiles := make([]entity.Profile, 0, len(that.roster))
	for _, participant := range that.roster {
		profiles = append(profiles, participant.Profile)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].PlayerID < profiles[j].PlayerID })

	return profiles
}

// Match returns a snapshot of a live match.
func (that *GameManager) Match(id string) (entity.MatchView, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	match, ok := that.matches[id]
	if !ok {
		return entity.MatchView{}, false
	}

	return match.View(), true
}

// Sweep drops terminal matches that finished before now minus the retention.
func (that *GameManager) Sweep(now time.Time) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, match := range that.matches {
		if !match.IsTerminal() || now.Sub(match.FinishedAt) < that.options.MatchRetention {
			continue
		}

		delete(that.matches, id)
		delete(that.archived, id)
		removed++
	}

	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (that *GameManager) StartSweeper(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "StartSweeper")

	if interval <= 0 {
		log.Warn("sweeper disabled", "interval", interval)
		return
	}

	ticker := that.options.Clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := that.Sweep(now); removed > 0 {
				log.Info("finished matches swept", "count", removed)
			}
		}
	}
}

// Close stops every clock and waits for pending archive writes and timeouts.
func (that *GameManager) Close() {
	that.mu.Lock()
	that.closed = true
	for _, match := range that.matches {
		match.StopTimers()
	}
	that.mu.Unlock()

	that.pending.Wait()
}

func (that *GameManager) newTimer(match *entity.Match, playerID string) *timer.Timer {
	return timer.New(that.options.Clock, playerID, match.ID, match.TimePerPlayer, that.options.TickInterval, timer.Hooks{
		OnTick:    that.onTick,
		OnTimeout: that.onTimeout,
	})
}

func (that *GameManager) onTick(playerID, matchID string) {
	_ = that.Play(context.Background(), entity.NewNotifyTime(playerID, matchID))
}

func (that *GameManager) onTimeout(playerID, matchID string) {
	_ = that.Play(context.Background(), entity.NewPlayerTimeout(playerID, matchID))
}

// startClock hands an already exhausted clock back as a timeout once the lock is released.
func (that *GameManager) startClock(match *entity.Match, playerID string) {
	log := that.logger.With("method", "startClock", "game_id", match.ID, "player_id", playerID)

	err := match.Timers[playerID].Start()
	if err == nil {
		return
	}

	log.Warn("could not start clock", "error", err)

	if !errors.Is(err, timer.ErrExhausted) {
		return
	}

	matchID := match.ID

	that.pending.Add(1)
	go func() {
		defer that.pending.Done()
		that.onTimeout(playerID, matchID)
	}()
}

// ensureParticipant adds the requester to the roster when it skipped registration.
func (that *GameManager) ensureParticipant(intent entity.Intent) {
	if _, ok := that.roster[intent.Requester()]; ok {
		return
	}

	that.roster[intent.Requester()] = entity.NewParticipant(intent.Requester(), "", intent.Connection())
}

func (that *GameManager) archiveFinished(ctx context.Context, affected []*entity.Match) {
	if that.archive == nil {
		return
	}

	log := that.logger.With("method", "archiveFinished")

	for _, match := range affected {
		if !match.IsTerminal() {
			continue
		}

		if _, ok := that.archived[match.ID]; ok {
			continue
		}
		that.archived[match.ID] = struct{}{}

		view := match.View()

		that.pending.Add(1)
		go func() {
			defer that.pending.Done()

			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
			defer cancel()

			if err := that.archive.Save(saveCtx, view); err != nil {
				log.Error("failed to archive match", "game_id", view.GameID, "error", err)
			}
		}()
	}
}
