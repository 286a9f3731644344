package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loungecast/loungecast-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestVoteMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_vote_suggestions.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no vote suggestions migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS vote_suggestions",
		"CHECK (status IN ('pending', 'approved', 'rejected'))",
		"CHECK (votes >= 0)",
		"CONSTRAINT vote_records_suggestion_user_key UNIQUE (suggestion_id, user_id)",
		"DROP TABLE IF EXISTS vote_records",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
