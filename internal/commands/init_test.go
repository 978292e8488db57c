package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/chart"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "fiscaudit-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "fiscaudit")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/fiscaudit")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFiscaudit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runFiscaudit(t, "init", dir, "--name", "SARL Exemple")
	require.NoError(t, err)

	expectedDirs := []string{
		"chart",
		"balances",
		"rules",
		"reports",
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runFiscaudit(t, "init", dir, "--name", "SARL Exemple", "--sector", "COMMERCE")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "fiscaudit.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: SARL Exemple")
	assert.Contains(t, contents, "sector: COMMERCE")
	assert.Contains(t, contents, "year_start: 01-01")
}

func TestInit_Chart(t *testing.T) {
	dir := t.TempDir()
	_, err := runFiscaudit(t, "init", dir, "--name", "SARL Exemple")
	require.NoError(t, err)

	svc, err := chart.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, len(chart.DefaultChart()), len(svc.All()))
}

func TestInit_RuleOverridesStub(t *testing.T) {
	dir := t.TempDir()
	_, err := runFiscaudit(t, "init", dir, "--name", "SARL Exemple")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "rules", "rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rules: []\n", string(data))
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runFiscaudit(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}
