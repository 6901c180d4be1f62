package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/internal/repository"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotOwner        = errors.New("session belongs to another player")
	ErrSessionClosed   = errors.New("session is no longer live")
)

const defaultResultLimit = 50

// session is one live game. mu serializes every command on it.
type session struct {
	mu         sync.Mutex
	meta       model.Session
	game       *culture.Game
	lastActive time.Time
}

// GameService owns the live sessions and keeps their cached views, turn
// history and results in step with every command.
type GameService struct {
	scenario    *culture.Scenario
	tuning      culture.Tuning
	cache       repository.ViewCache
	turnRepo    repository.TurnRepository
	resultRepo  repository.ResultRepository
	broadcaster Broadcaster
	narrative   culture.NarrativeFunc
	viewTTL     time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewGameService creates a GameService. Any of cache, turnRepo and
// resultRepo may be nil, in which case that store is skipped.
func NewGameService(
	scenario *culture.Scenario,
	tuning culture.Tuning,
	cache repository.ViewCache,
	turnRepo repository.TurnRepository,
	resultRepo repository.ResultRepository,
	broadcaster Broadcaster,
) *GameService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	// Build the catalog once before sessions share the scenario.
	scenario.Catalog()
	return &GameService{
		scenario:    scenario,
		tuning:      tuning,
		cache:       cache,
		turnRepo:    turnRepo,
		resultRepo:  resultRepo,
		broadcaster: broadcaster,
		viewTTL:     24 * time.Hour,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// SetNarrative sets the headline generator used by Headlines.
func (s *GameService) SetNarrative(fn culture.NarrativeFunc) {
	s.narrative = fn
}

// SetViewTTL sets how long cached views and idle sessions are kept.
func (s *GameService) SetViewTTL(ttl time.Duration) {
	if ttl > 0 {
		s.viewTTL = ttl
	}
}

// Scenario returns the seed data new games start from.
func (s *GameService) Scenario() *culture.Scenario {
	return s.scenario
}

// LiveCount returns the number of sessions held in memory.
func (s *GameService) LiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CreateGame starts a new session for playerID. A nil seed picks one from
// the clock.
func (s *GameService) CreateGame(ctx context.Context, playerID, movementID, startRegionID string, seed *int64) (*model.GameView, error) {
	sd := s.now().UnixNano()
	if seed != nil {
		sd = *seed
	}
	game := culture.NewGame(s.scenario, s.tuning, culture.NewRand(sd))
	if err := game.Start(movementID, startRegionID); err != nil {
		return nil, err
	}

	sess := &session{
		meta: model.Session{
			ID:            uuid.NewString(),
			PlayerID:      playerID,
			MovementID:    movementID,
			StartRegionID: startRegionID,
			Seed:          sd,
			CreatedAt:     s.now().UTC(),
		},
		game:       game,
		lastActive: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.meta.ID] = sess
	s.mu.Unlock()

	view := BuildView(sess.meta.ID, game.State(), s.now())
	s.cacheView(ctx, sess.meta, view)

	log.Info().Str("sessionId", sess.meta.ID).Str("playerId", playerID).
		Str("movement", movementID).Str("region", startRegionID).Int64("seed", sd).
		Msg("Game created")
	return view, nil
}

// GetGame returns the current view of a session. Sessions no longer in
// memory are served from the cached view.
func (s *GameService) GetGame(ctx context.Context, sessionID, playerID string) (*model.GameView, error) {
	sess, err := s.live(sessionID, playerID)
	if err == nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return BuildView(sessionID, sess.game.State(), s.now()), nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}
	return s.cachedView(ctx, sessionID, playerID)
}

// Evolve buys an evolution item.
func (s *GameService) Evolve(ctx context.Context, sessionID, playerID, itemID string) (*model.GameView, error) {
	return s.command(ctx, sessionID, playerID, func(g *culture.Game) error {
		return g.Evolve(itemID)
	})
}

// CollectInfluence credits influence points earned outside the turn loop.
func (s *GameService) CollectInfluence(ctx context.Context, sessionID, playerID string, points int) (*model.GameView, error) {
	return s.command(ctx, sessionID, playerID, func(g *culture.Game) error {
		_, err := g.CollectInfluence(points)
		return err
	})
}

// ChooseEventOption resolves the event awaiting the player's choice.
func (s *GameService) ChooseEventOption(ctx context.Context, sessionID, playerID, eventID, optionID string) (*model.GameView, error) {
	return s.command(ctx, sessionID, playerID, func(g *culture.Game) error {
		return g.ChooseEventOption(eventID, optionID)
	})
}

// SetStance changes a rival's diplomatic stance.
func (s *GameService) SetStance(ctx context.Context, sessionID, playerID, rivalID string, stance culture.Stance) (*model.GameView, error) {
	return s.command(ctx, sessionID, playerID, func(g *culture.Game) error {
		return g.SetDiplomaticStance(rivalID, stance)
	})
}

// AdvanceTurn resolves one turn. The turn is recorded, subscribers are
// notified, and a finished game is saved and released from memory.
func (s *GameService) AdvanceTurn(ctx context.Context, sessionID, playerID string) (*culture.TurnReport, *model.GameView, error) {
	sess, err := s.commandSession(ctx, sessionID, playerID)
	if err != nil {
		return nil, nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	rep, err := sess.game.AdvanceTurn()
	if err != nil {
		return nil, nil, err
	}
	sess.lastActive = s.now()
	state := sess.game.State()
	view := BuildView(sessionID, state, s.now())
	s.cacheView(ctx, sess.meta, view)

	if s.turnRepo != nil {
		if err := s.turnRepo.SaveTurn(ctx, model.NewTurnRecord(sessionID, rep)); err != nil {
			log.Error().Err(err).Str("sessionId", sessionID).Int("turn", rep.Turn).Msg("Failed to save turn record")
		}
	}

	s.broadcaster.BroadcastGameEvent(sessionID, EventTurnResolved, map[string]any{
		"turn":            rep.Turn,
		"global_adoption": rep.GlobalAdoption,
		"influence":       rep.InfluencePoints,
		"income":          rep.Income,
		"rival_shares":    rep.RivalShares,
	})
	if rep.AwaitingChoice != "" {
		s.broadcaster.BroadcastGameEvent(sessionID, EventAwaitingChoice, view.AwaitingChoice)
	}

	log.Info().Str("sessionId", sessionID).Int("turn", rep.Turn).
		Float64("adoption", rep.GlobalAdoption).Int("ip", rep.InfluencePoints).
		Msg("Turn resolved")

	if rep.GameOver != nil {
		s.finish(ctx, sess, state)
	}
	return rep, view, nil
}

// Headlines returns flavor headlines for the session's current state.
func (s *GameService) Headlines(ctx context.Context, sessionID, playerID string) ([]string, error) {
	sess, err := s.live(sessionID, playerID)
	if errors.Is(err, ErrSessionNotFound) {
		view, verr := s.cachedView(ctx, sessionID, playerID)
		if verr != nil {
			return nil, verr
		}
		if s.narrative == nil {
			return nil, nil
		}
		return s.narrative(view.MovementName, view.GlobalAdoption, joinRecent(view.RecentEvents)), nil
	}
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.game.Headlines(s.narrative), nil
}

// ListTurns returns the recorded turn history of a session.
func (s *GameService) ListTurns(ctx context.Context, sessionID, playerID string) ([]model.TurnRecord, error) {
	if err := s.authorize(ctx, sessionID, playerID); err != nil {
		return nil, err
	}
	if s.turnRepo == nil {
		return nil, nil
	}
	return s.turnRepo.ListTurns(ctx, sessionID)
}

// ListResults returns the player's finished games, newest first.
func (s *GameService) ListResults(ctx context.Context, playerID string, limit int) ([]model.GameResult, error) {
	if s.resultRepo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > defaultResultLimit {
		limit = defaultResultLimit
	}
	return s.resultRepo.ListResultsByPlayer(ctx, playerID, limit)
}

// command runs fn against a live session under its lock and publishes the
// resulting view. A rejected command publishes nothing.
func (s *GameService) command(ctx context.Context, sessionID, playerID string, fn func(*culture.Game) error) (*model.GameView, error) {
	sess, err := s.commandSession(ctx, sessionID, playerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess.game); err != nil {
		return nil, err
	}
	sess.lastActive = s.now()
	view := BuildView(sessionID, sess.game.State(), s.now())
	s.cacheView(ctx, sess.meta, view)
	s.broadcaster.BroadcastGameEvent(sessionID, EventStateChanged, view)
	return view, nil
}

// commandSession finds a live session for a command. A session that only
// survives as a cached view reports ErrSessionClosed.
func (s *GameService) commandSession(ctx context.Context, sessionID, playerID string) (*session, error) {
	sess, err := s.live(sessionID, playerID)
	if !errors.Is(err, ErrSessionNotFound) {
		return sess, err
	}
	if _, cerr := s.cachedView(ctx, sessionID, playerID); cerr != nil {
		return nil, cerr
	}
	return nil, ErrSessionClosed
}

func (s *GameService) live(sessionID, playerID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.meta.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	return sess, nil
}

func (s *GameService) authorize(ctx context.Context, sessionID, playerID string) error {
	_, err := s.live(sessionID, playerID)
	if !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	if s.cache == nil {
		return ErrSessionNotFound
	}
	owner, err := s.cache.GetOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	if owner == "" {
		return ErrSessionNotFound
	}
	if owner != playerID {
		return ErrNotOwner
	}
	return nil
}

func (s *GameService) cachedView(ctx context.Context, sessionID, playerID string) (*model.GameView, error) {
	if err := s.authorize(ctx, sessionID, playerID); err != nil {
		return nil, err
	}
	data, err := s.cache.GetView(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}
	var view model.GameView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *GameService) cacheView(ctx context.Context, meta model.Session, view *model.GameView) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		log.Error().Err(err).Str("sessionId", meta.ID).Msg("Failed to marshal view")
		return
	}
	if err := s.cache.SetView(ctx, meta.ID, data, s.viewTTL); err != nil {
		log.Warn().Err(err).Str("sessionId", meta.ID).Msg("Failed to cache view")
		return
	}
	if err := s.cache.SetOwner(ctx, meta.ID, meta.PlayerID, s.viewTTL); err != nil {
		log.Warn().Err(err).Str("sessionId", meta.ID).Msg("Failed to refresh session owner")
	}
}

// finish saves the result of a finished game and drops it from memory.
// The cached view stays readable until it expires.
func (s *GameService) finish(ctx context.Context, sess *session, state *culture.GameState) {
	res := model.NewGameResult(sess.meta, state)
	if s.resultRepo != nil && res != nil {
		if err := s.resultRepo.SaveResult(ctx, res); err != nil {
			log.Error().Err(err).Str("sessionId", sess.meta.ID).Msg("Failed to save game result")
		}
	}
	s.broadcaster.BroadcastGameEvent(sess.meta.ID, EventGameOver, state.GameOver)

	s.mu.Lock()
	delete(s.sessions, sess.meta.ID)
	s.mu.Unlock()

	log.Info().Str("sessionId", sess.meta.ID).Bool("won", state.GameOver.Won).
		Str("condition", string(state.GameOver.Condition)).Int("turn", state.Turn).
		Msg("Game over")
}

// ReapIdle drops sessions untouched since before cutoff and returns how many
// were dropped. Sessions busy with a command are skipped.
func (s *GameService) ReapIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			reaped++
		}
		sess.mu.Unlock()
	}
	return reaped
}
