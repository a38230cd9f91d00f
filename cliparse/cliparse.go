package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names selectable at startup.
const (
	BackendLocal     = "local"
	BackendFirestore = "firestore"
)

type Config struct {
	Port             int
	Backend          string // local or firestore
	DatabasePath     string // sqlite file, local backend only
	FirestoreProject string
	CredentialsFile  string
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("voice-of-cctc", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Persistence backend (local or firestore)")
	fs.StringVar(&cfg.DatabasePath, "d", "", "Local database path (local backend)")
	fs.StringVar(&cfg.FirestoreProject, "project", "", "Firestore project id (firestore backend)")
	fs.StringVar(&cfg.CredentialsFile, "credentials", "", "Service account credentials file (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("STORE_BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = BackendLocal
		}
	}

	switch cfg.Backend {
	case BackendLocal:
		if cfg.DatabasePath == "" {
			cfg.DatabasePath = os.Getenv("DATABASE_PATH")
		}
		if cfg.DatabasePath == "" {
			cfg.DatabasePath = "voice-of-cctc.db"
		}

	case BackendFirestore:
		if cfg.FirestoreProject == "" {
			cfg.FirestoreProject = os.Getenv("FIRESTORE_PROJECT")
		}
		if cfg.FirestoreProject == "" {
			return Config{}, errors.New("firestore backend requires a project id (use -project or FIRESTORE_PROJECT env)")
		}
		if cfg.CredentialsFile == "" {
			cfg.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}

	default:
		return Config{}, errors.New("backend must be local or firestore")
	}

	return cfg, nil
}
