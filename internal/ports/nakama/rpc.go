package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickPlayResponse is the payload returned to clients requesting a solo match.
type QuickPlayResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickPlay, rpcQuickPlay)
}

// rpcQuickPlay creates a fresh solo match for the calling user. Games are
// single-seat so there is never an existing match to join.
func rpcQuickPlay(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if _, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); !ok {
		return "", runtime.NewError("rpc requires an authenticated user", 16) // UNAUTHENTICATED
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameLifeGame, nil)
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickPlayResponse{MatchID: matchID}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
