package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"lifegame/internal/app"
	"lifegame/internal/cards"
	"lifegame/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []mockBroadcast
	labelUpdates int
}

type mockBroadcast struct {
	opCode int64
	data   []byte
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, mockBroadcast{opCode: opCode, data: append([]byte(nil), data...)})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) opCodes() []int64 {
	codes := make([]int64, len(md.broadcasts))
	for i, b := range md.broadcasts {
		codes[i] = b.opCode
	}
	return codes
}

func (md *mockDispatcher) countOp(op int64) int {
	n := 0
	for _, b := range md.broadcasts {
		if b.opCode == op {
			n++
		}
	}
	return n
}

// mockMatchData implements runtime.MatchData for driving the handler.
type mockMatchData struct {
	userID string
	opCode int64
	data   []byte
}

func (m *mockMatchData) GetUserId() string                  { return m.userID }
func (m *mockMatchData) GetSessionId() string               { return "session-1" }
func (m *mockMatchData) GetNodeId() string                  { return "node-1" }
func (m *mockMatchData) GetHidden() bool                    { return false }
func (m *mockMatchData) GetPersistence() bool               { return true }
func (m *mockMatchData) GetUsername() string                { return m.userID }
func (m *mockMatchData) GetStatus() string                  { return "" }
func (m *mockMatchData) GetReason() runtime.PresenceReason  { return runtime.PresenceReasonUnknown }
func (m *mockMatchData) GetOpCode() int64                   { return m.opCode }
func (m *mockMatchData) GetData() []byte                    { return m.data }
func (m *mockMatchData) GetReliable() bool                  { return true }
func (m *mockMatchData) GetReceiveTime() int64              { return 0 }

func newTestState() *MatchState {
	balance := domain.DefaultBalance()
	factory := cards.NewFactory(cards.DefaultCatalog(), balance)
	return &MatchState{
		UserID: "user-1",
		App:    app.NewService(factory, balance, nil),
	}
}

func message(op int64, payload any) *mockMatchData {
	var data []byte
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	return &mockMatchData{userID: "user-1", opCode: op, data: data}
}

func TestHandleStartGameBroadcastsEventsAndSnapshot(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()

	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, message(OpStartGame, nil))

	if state.Game == nil || !state.Game.InProgress() {
		t.Fatalf("game not started")
	}
	if got := dispatcher.countOp(OpGameEvent); got < 2 {
		t.Fatalf("broadcast %d events, want >= 2 (started + cards drawn): %v", got, dispatcher.opCodes())
	}
	if got := dispatcher.countOp(OpGameState); got != 1 {
		t.Fatalf("broadcast %d snapshots, want 1", got)
	}

	// Snapshot payload must round-trip as a domain snapshot.
	last := dispatcher.broadcasts[len(dispatcher.broadcasts)-1]
	if last.opCode != OpGameState {
		t.Fatalf("snapshot must be the final broadcast, got opcode %d", last.opCode)
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(last.data, &snapshot); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snapshot.Phase != domain.PhaseDraw || len(snapshot.Hand) == 0 {
		t.Fatalf("snapshot = phase %s with %d hand cards", snapshot.Phase, len(snapshot.Hand))
	}
}

func TestHandleMessageSendsErrorOnWrongPhase(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()

	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, message(OpStartGame, nil))
	before := len(dispatcher.broadcasts)

	// NextTurn is invalid straight after the draw phase begins.
	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, message(OpNextTurn, nil))

	if got := dispatcher.broadcasts[len(dispatcher.broadcasts)-1]; got.opCode != OpGameError {
		t.Fatalf("want OpGameError, got %d", got.opCode)
	}
	if len(dispatcher.broadcasts) != before+1 {
		t.Fatalf("error must be the only new broadcast")
	}

	var wire wireError
	if err := json.Unmarshal(dispatcher.broadcasts[len(dispatcher.broadcasts)-1].data, &wire); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if wire.Code != 400 || wire.Message == "" {
		t.Fatalf("error payload = %+v", wire)
	}
}

func TestHandleMessageIgnoresNonOccupant(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()

	msg := &mockMatchData{userID: "intruder", opCode: OpStartGame}
	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, msg)

	if state.Game != nil {
		t.Fatalf("non-occupant must not start a game")
	}
	if len(dispatcher.broadcasts) != 0 {
		t.Fatalf("non-occupant message must not broadcast")
	}
}

func TestStartChallengeFlow(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()

	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, message(OpStartGame, nil))
	handler.handleMessage(context.Background(), state, dispatcher, noopLogger{}, message(OpStartChallenge, nil))

	if state.Game.Phase != domain.PhaseChallenge {
		t.Fatalf("phase = %s, want challenge", state.Game.Phase)
	}
	if state.Game.CurrentChallenge == nil {
		t.Fatalf("no challenge drawn")
	}
}

func TestBuildLabel(t *testing.T) {
	var label Label
	if err := json.Unmarshal([]byte(buildLabel(nil)), &label); err != nil {
		t.Fatalf("unmarshal lobby label: %v", err)
	}
	if !label.Open || label.State != "lobby" || label.Game != "lifegame" {
		t.Fatalf("lobby label = %+v", label)
	}

	g := domain.NewGame("g1", domain.DefaultBalance())
	g.Status = domain.StatusInProgress
	if err := json.Unmarshal([]byte(buildLabel(g)), &label); err != nil {
		t.Fatalf("unmarshal playing label: %v", err)
	}
	if label.Open || label.State != "in_progress" {
		t.Fatalf("playing label = %+v", label)
	}
}

func TestEncodeEventEnvelope(t *testing.T) {
	ev := app.Event{
		Kind:    app.EventTurnStarted,
		Payload: app.TurnStartedPayload{Turn: 3, Stage: domain.StageYouth},
	}
	data, err := encodeEvent(ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded struct {
		Kind    string `json:"kind"`
		Payload struct {
			Turn  int    `json:"turn"`
			Stage string `json:"stage"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if decoded.Kind != "turn_started" || decoded.Payload.Turn != 3 || decoded.Payload.Stage != "youth" {
		t.Fatalf("envelope = %+v", decoded)
	}
}
