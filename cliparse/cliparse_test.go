// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Backend != BackendLocal {
		t.Errorf("Expected default backend local, got %q", cfg.Backend)
	}
	if cfg.DatabasePath != "voice-of-cctc.db" {
		t.Errorf("Expected default database path, got %q", cfg.DatabasePath)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	defer os.Clearenv()
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_PATH", "env.db")

	cfg, err := ParseFlags([]string{"-p", "3000", "-d", "flag.db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Expected flag port 3000, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "flag.db" {
		t.Errorf("Expected flag database path, got %q", cfg.DatabasePath)
	}
}

func TestEnvFallback(t *testing.T) {
	defer os.Clearenv()
	os.Setenv("PORT", "9000")
	os.Setenv("STORE_BACKEND", "local")
	os.Setenv("DATABASE_PATH", "env.db")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9000 || cfg.Backend != BackendLocal || cfg.DatabasePath != "env.db" {
		t.Errorf("Expected env config, got %+v", cfg)
	}
}

func TestInvalidPort(t *testing.T) {
	defer os.Clearenv()
	os.Setenv("PORT", "not-a-number")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestInvalidBackend(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	if _, err := ParseFlags([]string{"-b", "mysql"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestFirestoreBackend(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	// Project id is required
	if _, err := ParseFlags([]string{"-b", "firestore"}); err == nil {
		t.Error("Expected error without a project id")
	}

	cfg, err := ParseFlags([]string{"-b", "firestore", "-project", "rebias-voice-of-cctc"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Backend != BackendFirestore || cfg.FirestoreProject != "rebias-voice-of-cctc" {
		t.Errorf("Unexpected config: %+v", cfg)
	}

	os.Setenv("FIRESTORE_PROJECT", "env-project")
	os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/sa.json")
	cfg, err = ParseFlags([]string{"-b", "firestore"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.FirestoreProject != "env-project" || cfg.CredentialsFile != "/tmp/sa.json" {
		t.Errorf("Expected env fallbacks, got %+v", cfg)
	}
}
