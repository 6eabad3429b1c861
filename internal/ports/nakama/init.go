// Package nakama adapts the game core to the Nakama server runtime: match
// handler, RPCs and result storage.
package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameLifeGame, NewMatch); err != nil {
		return err
	}

	logger.Info("LifeGame Go module loaded.")
	return nil
}
