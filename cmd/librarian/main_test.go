package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AntonStoeckl/library-catalog-go/shared/shell/config"
)

const (
	seedPath = "testdata/seed.yaml"

	fixtureCopyAvailable   = "0b5e6f7a-8b9c-4d0e-9f1a-2b3c4d5e6f70"
	fixtureCopyMaintenance = "1c6f7a8b-9c0d-4e1f-8a2b-3c4d5e6f7a81"
	fixtureQuestion        = "3e8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9ca3"
	fixtureFutureQuestion  = "4f9c0d1e-2f3a-4b4c-9d5e-6f7a8b9cab04"
)

const configTemplate = `database:
  driver: sqlite
  dsn: "file:{db}?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
operator:
  username: {username}
  borrower_id: {borrower_id}
  permissions: [{permissions}]
log:
  level: debug
retry:
  max_attempts: 3
  base_delay: 1ms
`

// cli runs librarian commands against a sqlite file in a temp dir.
type cli struct {
	t          *testing.T
	dir        string
	configPath string
	now        time.Time
	logs       *observer.ObservedLogs
	stderr     string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	c := &cli{
		t:   t,
		dir: t.TempDir(),
		now: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	c.configPath = c.writeConfig("librarian", "11111111-2222-4333-8444-555555555555", "can_mark_returned, can_change_status")

	return c
}

// writeConfig writes a config for the given operator and returns its path.
func (c *cli) writeConfig(username, borrowerID, permissions string) string {
	c.t.Helper()

	content := strings.NewReplacer(
		"{db}", filepath.Join(c.dir, "librarian.db"),
		"{username}", username,
		"{borrower_id}", borrowerID,
		"{permissions}", permissions,
	).Replace(configTemplate)

	path := filepath.Join(c.dir, username+".yaml")
	require.NoError(c.t, os.WriteFile(path, []byte(content), 0o600), "error in arranging test data")

	return path
}

func (c *cli) run(args ...string) (string, error) {
	return c.runWithConfig(c.configPath, args...)
}

func (c *cli) runWithConfig(configPath string, args ...string) (string, error) {
	c.t.Helper()

	var stdout, stderr bytes.Buffer

	core, logs := observer.New(zap.DebugLevel)
	c.logs = logs

	a := newApp(&stdout, &stderr, func() time.Time { return c.now })
	a.newLogger = func(config.LogConfig) (*zap.Logger, error) {
		return zap.New(core), nil
	}

	root := newRootCommand(a)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.ExecuteContext(context.Background())
	a.close()
	c.stderr = stderr.String()

	return stdout.String(), err
}

// mustRun runs a command that is expected to succeed.
func (c *cli) mustRun(args ...string) string {
	c.t.Helper()

	out, err := c.run(args...)
	require.NoError(c.t, err, "librarian %s", strings.Join(args, " "))

	return out
}

// decode runs a command with JSON output and unmarshals its output into target.
func (c *cli) decode(target any, args ...string) {
	c.t.Helper()

	out := c.mustRun(append(args, "-o", outputJSON)...)
	require.NoError(c.t, json.Unmarshal([]byte(out), target), out)
}

// seeded returns a cli with a migrated and seeded database.
func seeded(t *testing.T) *cli {
	t.Helper()

	c := newCLI(t)
	c.mustRun("migrate")
	c.mustRun("seed", seedPath)

	return c
}

func appendToFile(t *testing.T, path string, content string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err, "error in arranging test data")
	defer func() { _ = f.Close() }()

	_, err = f.WriteString(content)
	require.NoError(t, err, "error in arranging test data")
}
