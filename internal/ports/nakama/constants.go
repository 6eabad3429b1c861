package nakama

const (
	// RpcQuickPlay is the Nakama RPC id clients call to create a solo game match.
	RpcQuickPlay = "quick_play"

	// MatchNameLifeGame is the authoritative match handler name registered with Nakama.
	MatchNameLifeGame = "lifegame_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame        int64 = 1
	OpStartChallenge   int64 = 2
	OpResolveChallenge int64 = 3
	OpSelectCard       int64 = 4
	OpSelectInsurance  int64 = 5
	OpUpgradeInsurance int64 = 6
	OpNextTurn         int64 = 7

	// Server -> Client events
	OpGameState int64 = 101
	OpGameEvent int64 = 102
	OpGameError int64 = 103
)

// Environment variable keys read from the Nakama runtime env block.
const (
	envBalancePath = "lifegame_balance_path"
	envCardsPath   = "lifegame_cards_path"
)
