package gateway

import (
	"fmt"
)

// Table names.
const (
	TablePlayers                 = "players"
	TableTournaments             = "tournaments"
	TableTournamentRegistrations = "tournament_registrations"
	TableGroupTrainingSessions   = "group_training_sessions"
	TableTrainingPlans           = "training_plans"
	TableTrainingReports         = "training_reports"
	TablePlayerPSEScores         = "player_pse_scores"
)

// TableSchema lists a table's writable columns. "id" is always store-assigned.
type TableSchema struct {
	Columns []string
	// JSON columns hold arrays; SQLite stores them as encoded text.
	JSON map[string]bool
}

// Has reports whether col is a writable column.
func (s TableSchema) Has(col string) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Schema is the logical schema shared by every backend.
var Schema = map[string]TableSchema{
	TablePlayers: {Columns: []string{
		"first_name", "last_name", "birth_date", "email", "phone", "level", "age_group", "notes", "created_at", "updated_at",
	}},
	TableTournaments: {Columns: []string{
		"name", "start_date", "end_date", "location", "type", "level", "description", "created_at",
	}},
	TableTournamentRegistrations: {Columns: []string{
		"tournament_id", "player_id", "registration_date",
	}},
	TableGroupTrainingSessions: {Columns: []string{
		"date", "time", "level", "max_participants", "notes", "created_at",
	}},
	TableTrainingPlans: {Columns: []string{
		"player_id", "start_date", "end_date", "focus_area", "intensity", "technical_goal", "fitness_goal", "tactical_goal", "notes", "created_at",
	}},
	TableTrainingReports: {
		Columns: []string{
			"training_type", "session_id", "training_plan_id", "report_date", "performance_rating", "attendance",
			"achievements", "areas_for_improvement", "coach_notes", "created_at",
		},
		JSON: map[string]bool{"attendance": true},
	},
	TablePlayerPSEScores: {Columns: []string{
		"player_id", "report_id", "pse_score", "created_at",
	}},
}

// CheckTable returns the schema for table or an error for an unknown table.
func CheckTable(table string) (TableSchema, error) {
	s, ok := Schema[table]
	if !ok {
		return TableSchema{}, fmt.Errorf("unknown table %q", table)
	}
	return s, nil
}

// CheckRow rejects columns that are not in the table's schema.
func CheckRow(table string, row Row) error {
	s, err := CheckTable(table)
	if err != nil {
		return err
	}
	for col := range row {
		if !s.Has(col) {
			return fmt.Errorf("unknown column %q in table %q", col, table)
		}
	}
	return nil
}
