package nakama

import (
	"encoding/json"

	"lifegame/internal/app"
	"lifegame/internal/domain"
)

// wireEvent is the JSON envelope broadcast for every app event.
type wireEvent struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// wireError is the JSON payload sent on OpGameError.
type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Label is the match label advertised for quick-play queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	State string `json:"state"`
}

func encodeEvent(ev app.Event) ([]byte, error) {
	return json.Marshal(wireEvent{Kind: ev.Kind, Payload: ev.Payload})
}

func encodeSnapshot(g *domain.Game) ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

func buildLabel(g *domain.Game) string {
	label := Label{Open: g == nil, Game: "lifegame", State: "lobby"}
	if g != nil {
		label.State = string(g.Status)
	}
	b, _ := json.Marshal(label)
	return string(b)
}
