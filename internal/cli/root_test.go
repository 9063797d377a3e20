package cli

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/internal/cli/config"
)

// chdir moves the working directory for one test, so the upward config
// search cannot pick up a stray leapdb.yaml.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// runRoot executes the root command with the given arguments, capturing
// stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	root := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func redisAddr(t *testing.T) (*miniredis.Miniredis, string, string) {
	t.Helper()
	s := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	return s, host, port
}

func TestRootVersion(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "LeapDB v")
	assert.Contains(t, out, "Build date:")
}

func TestRootInvalidOutputFormat(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := runRoot(t, "-o", "bogus", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRootNoConnectionConfigured(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := runRoot(t, "tables")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no connection configured")
}

func TestProfileLifecycle(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	db := filepath.Join(tmp, "profiles.db")

	out, _, err := runRoot(t, "--profiles-db", db, "profile", "save", "primary",
		"--type", "mysql", "--host", "db1.internal", "--port", "3306",
		"--username", "app", "--password", "sekret", "--database", "shop")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved profile "primary" (mysql)`)

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "primary")
	assert.Contains(t, out, "db1.internal")

	// Credentials never render.
	assert.NotContains(t, out, "sekret")

	// Partial update keeps the unset fields.
	_, _, err = runRoot(t, "--profiles-db", db, "profile", "save", "primary", "--host", "db2.internal")
	require.NoError(t, err)

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "db2.internal")
	assert.Contains(t, out, "mysql")
	assert.NotContains(t, out, "db1.internal")

	exportFile := filepath.Join(tmp, "profiles.yaml")
	out, _, err = runRoot(t, "--profiles-db", db, "profile", "export", "-f", exportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 profiles")

	data, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: primary")
	assert.Contains(t, string(data), "password: sekret")

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "delete", "primary")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted profile "primary"`)

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 rows)")

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "import", exportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 profiles")

	out, _, err = runRoot(t, "--profiles-db", db, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "db2.internal")
}

func TestQueryRedisEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	_, host, port := redisAddr(t)

	out, _, err := runRoot(t, "--type", "redis", "--host", host, "--port", port,
		"query", "SET greeting hello\nGET greeting")
	require.NoError(t, err)

	assert.Contains(t, out, "| command | result |")
	assert.Contains(t, out, "GET greeting")
	assert.Contains(t, out, "hello")
}

func TestQueryOutputJSON(t *testing.T) {
	chdir(t, t.TempDir())
	s, host, port := redisAddr(t)
	require.NoError(t, s.Set("greeting", "hello"))

	out, _, err := runRoot(t, "--type", "redis", "--host", host, "--port", port,
		"-o", "json", "query", "GET greeting")
	require.NoError(t, err)
	assert.Contains(t, out, `"columns"`)
	assert.Contains(t, out, `"hello"`)
}

func TestInspectRedisEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	s, host, port := redisAddr(t)
	require.NoError(t, s.Set("greeting", "hello"))

	out, _, err := runRoot(t, "--type", "redis", "--host", host, "--port", port, "inspect", "greeting")
	require.NoError(t, err)

	assert.Contains(t, out, "key:     greeting")
	assert.Contains(t, out, "type:    string")
	assert.Contains(t, out, "ttl:     none")
	assert.Contains(t, out, "value:   hello")
}

func TestTablesRedisEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	s, host, port := redisAddr(t)
	require.NoError(t, s.Set("user:1", "alice"))

	out, _, err := runRoot(t, "--type", "redis", "--host", host, "--port", port, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "user:1")
}

func TestPingRedisEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	_, host, port := redisAddr(t)

	out, _, err := runRoot(t, "--type", "redis", "--host", host, "--port", port, "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "pong (engine: redis")
}

func TestPingAllEmptyStore(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	out, _, err := runRoot(t, "--profiles-db", filepath.Join(tmp, "profiles.db"), "ping", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved profiles")
}

func TestAlterDryRunMySQL(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := runRoot(t, "--type", "mysql", "--host", "localhost",
		"alter", "add-column", "users", "age", "INT", "--not-null", "--default", "0", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE `users` ADD COLUMN `age` INT NOT NULL DEFAULT 0;\n", out)
}

func TestAlterDryRunPostgresRename(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := runRoot(t, "--type", "postgresql", "--host", "localhost",
		"alter", "rename-column", "users", "nick", "nickname", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "users" RENAME COLUMN "nick" TO "nickname";`+"\n", out)
}

func TestAlterDryRunRedisUnsupported(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := runRoot(t, "--type", "redis", "--host", "localhost",
		"alter", "drop-column", "users", "age", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operation")
}

func TestNewCompletionCommand(t *testing.T) {
	cmd := NewCompletionCommand()
	assert.Contains(t, cmd.Use, "completion")
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}
