package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"lifegame/internal/app"
	"lifegame/internal/cards"
	"lifegame/internal/config"
	"lifegame/internal/domain"
	"lifegame/internal/ports"
)

// MatchState holds the authoritative runtime state for one solo game match.
type MatchState struct {
	UserID   string           // occupant, empty until someone joins
	Presence runtime.Presence // occupant presence for targeted messaging

	App     *app.Service
	Game    *domain.Game
	Results ports.ResultStore
	Saved   bool // result persisted for the current game
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. Balance and catalog paths
// come from the runtime env block so operators can tune without rebuilding.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	balance, err := config.LoadBalance(env[envBalancePath])
	if err != nil {
		logger.Warn("MatchInit: Could not load balance config, using defaults: %v", err)
		balance = domain.DefaultBalance()
	}

	catalog := cards.DefaultCatalog()
	if path := env[envCardsPath]; path != "" {
		if loaded, err := cards.LoadCatalog(path); err != nil {
			logger.Warn("MatchInit: Could not load card catalog, using defaults: %v", err)
		} else {
			catalog = loaded
		}
	}

	state := &MatchState{
		App: app.NewService(cards.NewFactory(catalog, balance), balance, nil),
	}

	tickRate := 1
	return state, tickRate, buildLabel(nil)
}

// MatchJoinAttempt admits exactly one player; the game is single-seat.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow rejoin by the same user.
	if matchState.UserID != "" && matchState.UserID != presence.GetUserId() {
		return state, false, "match occupied"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.UserID = p.GetUserId()
		matchState.Presence = p
	}
	matchState.Results = NewStorageResultStore(nk, matchState.UserID)

	if err := dispatcher.MatchLabelUpdate(buildLabel(matchState.Game)); err != nil {
		logger.Error("MatchJoin: Failed to update label: %v", err)
	}

	// Rejoining players get the current state replayed.
	if matchState.Game != nil {
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	}
	return matchState
}

// MatchLeave terminates the match when the occupant disconnects. Finished
// games are already persisted; abandoned ones are simply dropped.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.UserID {
			logger.Info("MatchLeave: Occupant %s left, terminating match.", matchState.UserID)
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}
	return matchState
}

// handleMessage dispatches one client message to the app service and
// broadcasts the resulting events plus a fresh snapshot.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		logger.Warn("handleMessage: Message from non-occupant %s ignored.", msg.GetUserId())
		return
	}

	var events []app.Event
	var err error

	switch msg.GetOpCode() {
	case OpStartGame:
		if state.Game == nil || !state.Game.InProgress() {
			state.Game = state.App.NewGame()
			state.Saved = false
		}
		events, err = state.App.Start(state.Game)

	case OpStartChallenge:
		events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
			return state.App.StartChallenge(g)
		})

	case OpResolveChallenge:
		var request struct {
			CardIDs []string `json:"card_ids"`
		}
		if err = json.Unmarshal(msg.GetData(), &request); err == nil {
			events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
				return state.App.ResolveChallenge(g, request.CardIDs)
			})
		}

	case OpSelectCard:
		var request struct {
			Index int `json:"index"`
		}
		if err = json.Unmarshal(msg.GetData(), &request); err == nil {
			events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
				return state.App.SelectCard(g, request.Index)
			})
		}

	case OpSelectInsurance:
		var request struct {
			Duration string `json:"duration"`
		}
		if err = json.Unmarshal(msg.GetData(), &request); err == nil {
			events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
				return state.App.SelectInsuranceType(g, domain.DurationType(request.Duration))
			})
		}

	case OpUpgradeInsurance:
		var request struct {
			CardID string `json:"card_id"`
		}
		if err = json.Unmarshal(msg.GetData(), &request); err == nil {
			events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
				return state.App.UpgradeInsurance(g, request.CardID)
			})
		}

	case OpNextTurn:
		events, err = mh.requireGame(state, func(g *domain.Game) ([]app.Event, error) {
			return state.App.NextTurn(g)
		})

	default:
		logger.Warn("handleMessage: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Warn("handleMessage: Opcode %d from %s failed: %v", msg.GetOpCode(), state.UserID, err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)

	if state.Game != nil && !state.Game.InProgress() && state.Game.Status != domain.StatusNotStarted {
		mh.persistResult(ctx, state, logger)
		if err := dispatcher.MatchLabelUpdate(buildLabel(state.Game)); err != nil {
			logger.Error("handleMessage: Failed to update label: %v", err)
		}
	}
}

func (mh *matchHandler) requireGame(state *MatchState, op func(*domain.Game) ([]app.Event, error)) ([]app.Event, error) {
	if state.Game == nil {
		return nil, app.ErrNotInProgress
	}
	return op(state.Game)
}

func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	bytes, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", ev.Kind, err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameEvent, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast event %s: %v", ev.Kind, err)
	}
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		return
	}
	bytes, err := encodeSnapshot(state.Game)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameState, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast snapshot: %v", err)
	}
}

// sendError sends a wireError to the occupant.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	bytes, err := json.Marshal(wireError{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	var recipients []runtime.Presence
	if state.Presence != nil {
		recipients = []runtime.Presence{state.Presence}
	}
	if err := dispatcher.BroadcastMessage(OpGameError, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to send error: %v", err)
	}
}

// persistResult writes the finished game to the occupant's result storage
// exactly once per game.
func (mh *matchHandler) persistResult(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Saved || state.Results == nil || state.Game == nil {
		return
	}

	g := state.Game
	result := ports.GameResult{
		ID:            g.ID,
		UserID:        state.UserID,
		Status:        g.Status,
		Stage:         g.Stage,
		Turns:         g.Turn,
		FinalVitality: g.Vitality.Value(),
		Stats:         g.Stats,
		CompletedAt:   time.Now().UTC(),
	}
	if err := state.Results.SaveResult(ctx, result); err != nil {
		logger.Error("persistResult: Failed to save game result: %v", err)
		return
	}
	state.Saved = true
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match shut down.")
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
