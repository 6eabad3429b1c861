package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"lifegame/internal/domain"
	"lifegame/internal/ports"
)

const (
	resultsCollection = "lifegame_results"
	statsCollection   = "lifegame_stats"
	summaryKey        = "summary"
)

// StorageResultStore implements ports.ResultStore on Nakama's storage engine.
// Results are written per user; the summary is a rolling record updated with
// optimistic concurrency via the object version.
type StorageResultStore struct {
	nk     runtime.NakamaModule
	userID string
}

// NewStorageResultStore creates a result store scoped to one user.
func NewStorageResultStore(nk runtime.NakamaModule, userID string) *StorageResultStore {
	return &StorageResultStore{nk: nk, userID: userID}
}

// summaryRecord keeps running sums so the aggregate never needs a scan.
type summaryRecord struct {
	Games         int `json:"games"`
	Victories     int `json:"victories"`
	GameOvers     int `json:"game_overs"`
	TotalTurns    int `json:"total_turns"`
	TotalVitality int `json:"total_vitality"`
	ChallengesWon int `json:"challenges_won"`
}

// SaveResult writes the result object and folds it into the summary record.
func (s *StorageResultStore) SaveResult(ctx context.Context, result ports.GameResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	record, version, err := s.readSummary(ctx)
	if err != nil {
		return err
	}
	record.Games++
	switch result.Status {
	case domain.StatusVictory:
		record.Victories++
	case domain.StatusGameOver:
		record.GameOvers++
	}
	record.TotalTurns += result.Turns
	record.TotalVitality += result.FinalVitality
	record.ChallengesWon += result.Stats.SuccessfulChallenges

	summaryValue, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal summary record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      resultsCollection,
			Key:             result.ID,
			UserID:          s.userID,
			Value:           string(value),
			PermissionRead:  1, // owner read
			PermissionWrite: 0, // server only
		},
		{
			Collection:      statsCollection,
			Key:             summaryKey,
			UserID:          s.userID,
			Value:           string(summaryValue),
			Version:         version,
			PermissionRead:  1,
			PermissionWrite: 0,
		},
	}
	if _, err := s.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write game result: %w", err)
	}
	return nil
}

// Summary returns the aggregate statistics over the user's stored results.
func (s *StorageResultStore) Summary(ctx context.Context) (ports.Summary, error) {
	record, _, err := s.readSummary(ctx)
	if err != nil {
		return ports.Summary{}, err
	}

	summary := ports.Summary{
		Games:         record.Games,
		Victories:     record.Victories,
		GameOvers:     record.GameOvers,
		ChallengesWon: record.ChallengesWon,
	}
	if record.Games > 0 {
		summary.AvgTurns = float64(record.TotalTurns) / float64(record.Games)
		summary.AvgVitality = float64(record.TotalVitality) / float64(record.Games)
	}
	return summary, nil
}

// readSummary fetches the rolling record and its storage version, returning
// a zero record with an empty version when none exists yet.
func (s *StorageResultStore) readSummary(ctx context.Context) (summaryRecord, string, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: statsCollection, Key: summaryKey, UserID: s.userID},
	})
	if err != nil {
		return summaryRecord{}, "", fmt.Errorf("failed to read summary record: %w", err)
	}
	if len(objects) == 0 {
		return summaryRecord{}, "", nil
	}

	var record summaryRecord
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &record); err != nil {
		return summaryRecord{}, "", fmt.Errorf("failed to unmarshal summary record: %w", err)
	}
	return record, objects[0].GetVersion(), nil
}

var _ ports.ResultStore = (*StorageResultStore)(nil)
