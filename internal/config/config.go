package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/agent-portal/portal/internal/logger"
	"github.com/agent-portal/portal/internal/models"
)

const (
	DefaultPort     = 3000
	DefaultDocument = "index.html"
	DotEnvFile      = ".env"

	EnvPort      = "PORT"
	EnvRoot      = "STATIC_ROOT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Config is everything the server needs at startup.
type Config struct {
	Site models.Site
	Log  logger.Config
}

// Loader resolves a Config. Getenv and Executable are swappable for tests.
type Loader struct {
	Getenv     func(string) string
	Executable func() (string, error)
}

func NewLoader() *Loader {
	return &Loader{
		Getenv:     os.Getenv,
		Executable: os.Executable,
	}
}

// Load resolves the root directory, layers Root/.env under the process
// environment and reads the port and logging settings.
func (l *Loader) Load() (Config, error) {
	root, err := l.resolveRoot()
	if err != nil {
		return Config{}, err
	}

	dotenv, err := readDotEnv(filepath.Join(root, DotEnvFile))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v := l.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	port, err := parsePort(lookup(EnvPort))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Site: models.Site{
			Root:            root,
			DefaultDocument: DefaultDocument,
			Port:            port,
		},
		Log: logger.Config{
			Level:  lookup(EnvLogLevel),
			Format: lookup(EnvLogFormat),
		},
	}, nil
}

// resolveRoot returns STATIC_ROOT when set, otherwise the directory holding
// the running executable.
func (l *Loader) resolveRoot() (string, error) {
	if dir := strings.TrimSpace(l.Getenv(EnvRoot)); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", &models.StartupError{Stage: "config.root", Kind: models.KindInvalidConfig, Target: dir, Err: err}
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", &models.StartupError{Stage: "config.root", Kind: models.KindNotFound, Target: abs, Err: err}
		}
		if !info.IsDir() {
			return "", &models.StartupError{Stage: "config.root", Kind: models.KindInvalidConfig, Target: abs, Err: errors.New("not a directory")}
		}
		return abs, nil
	}

	exe, err := l.Executable()
	if err != nil {
		return "", &models.StartupError{Stage: "config.root", Kind: models.KindNotFound, Err: err}
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// readDotEnv parses path if it exists. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, &models.StartupError{Stage: "config.dotenv", Kind: models.KindInvalidConfig, Target: path, Err: err}
	}
	return vals, nil
}

func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.StartupError{Stage: "config.port", Kind: models.KindInvalidConfig, Err: fmt.Errorf("%s=%q: %w", EnvPort, raw, err)}
	}
	if port < 0 || port > 65535 {
		return 0, &models.StartupError{Stage: "config.port", Kind: models.KindInvalidConfig, Err: fmt.Errorf("%s=%d out of range", EnvPort, port)}
	}
	return port, nil
}
