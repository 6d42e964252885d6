package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forkasbib/restopos-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestUsageCountersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_usage_counters.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS uso_recursos",
		"mes_medicion INTEGER NOT NULL CHECK (mes_medicion BETWEEN 1 AND 12)",
		"uq_uso_recursos_periodo",
		"ON uso_recursos (id_restaurante, mes_medicion, año_medicion)",
		"DROP TABLE IF EXISTS uso_recursos",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestLimitAlertsMigrationDedupesPendingAlerts(t *testing.T) {
	content := readMigration(t, "*_create_limit_alerts.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS alertas_limites",
		"uq_alertas_pendientes",
		"ON alertas_limites (id_restaurante, tipo_alerta, recurso_afectado)",
		"WHERE estado = 'pendiente'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTenancyMigrationSeedsPlansAndActiveIndex(t *testing.T) {
	content := readMigration(t, "*_create_tenancy.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS planes",
		"funcionalidades JSONB NOT NULL DEFAULT '{}'::jsonb",
		"uq_suscripciones_activa",
		"WHERE estado = 'activa'",
		"INSERT INTO planes",
		"'enterprise'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir should validate: %v", err)
	}
}
