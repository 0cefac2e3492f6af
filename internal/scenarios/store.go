package scenarios

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cogniplay/backend/internal/models"
)

// SQLStore persists characters (with their bounded interaction memory) and
// completed scenario results. Trait and history columns are JSON.
type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SaveCharacter(character *models.Character) error {
	traits, err := json.Marshal(character.PersonalityTraits)
	if err != nil {
		return fmt.Errorf("marshal traits: %w", err)
	}
	history, err := json.Marshal(character.InteractionHistory)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO ai_character_memory
			(character_id, name, role, personality_traits, background, interaction_history, created_at, last_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (character_id) DO UPDATE SET
			personality_traits = EXCLUDED.personality_traits,
			interaction_history = EXCLUDED.interaction_history,
			last_used = EXCLUDED.last_used`,
		character.ID, character.Name, character.Role, traits, character.Background,
		history, character.CreatedAt, character.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("save character: %w", err)
	}
	return nil
}

// AppendInteraction folds one turn into the stored memory, keeping only the
// most recent entries.
func (s *SQLStore) AppendInteraction(characterID string, interaction models.Interaction) error {
	var raw []byte
	err := s.db.QueryRow(`
		SELECT interaction_history FROM ai_character_memory WHERE character_id = $1`,
		characterID,
	).Scan(&raw)
	if err != nil {
		return fmt.Errorf("load character memory: %w", err)
	}

	var history []models.Interaction
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &history); err != nil {
			return fmt.Errorf("decode character memory: %w", err)
		}
	}

	history = append(history, interaction)
	if len(history) > models.MaxInteractionHistory {
		history = history[len(history)-models.MaxInteractionHistory:]
	}

	updated, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode character memory: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE ai_character_memory SET interaction_history = $1, last_used = $2
		WHERE character_id = $3`,
		updated, interaction.Timestamp, characterID,
	)
	if err != nil {
		return fmt.Errorf("update character memory: %w", err)
	}
	return nil
}

func (s *SQLStore) SaveScenarioResult(result *models.ScenarioResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var sessionID interface{}
	if result.SessionID != "" {
		sessionID = result.SessionID
	}

	_, err = tx.Exec(`
		INSERT INTO scenario_results
			(result_id, session_id, scenario_type, difficulty, performance_score,
			 decision_quality_score, completion_time_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.ResultID, sessionID, result.ScenarioType, result.Difficulty,
		result.PerformanceScore, result.DecisionQualityScore,
		result.CompletionTimeSeconds, result.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert scenario result: %w", err)
	}

	if result.SessionID != "" {
		_, err = tx.Exec(`
			UPDATE sessions SET scenarios_completed = scenarios_completed + 1
			WHERE session_id = $1`,
			result.SessionID,
		)
		if err != nil {
			return fmt.Errorf("update session counter: %w", err)
		}
	}

	return tx.Commit()
}
