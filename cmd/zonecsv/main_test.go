package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/zonecsv-go/internal/config"
	"github.com/xuri/excelize/v2"
)

// execute runs the CLI with args against a temp config path and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"ZONECSV_ROOT", "ZONECSV_SCENARIOS", "ZONECSV_PATTERN", "ZONECSV_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	base := []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}
	cmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	err := cmd.Execute()
	return out.String(), err
}

func writeScenario(t *testing.T, root, scenario, content string) string {
	t.Helper()
	dir := filepath.Join(root, scenario)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "3DAnimatedMapData.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFixCommand(t *testing.T) {
	root := t.TempDir()
	path := writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\n1,10\n2,20\n")

	out, err := execute(t, "fix", "--root", root,
		"--scenario", "MTP25_2020", "--scenario", "MTP25_2030", "--zone-prefix", "Z")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "MTP25_2020: updated "+path+" (2 rows)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "MTP25_2030: skipping, file not found"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ZONE,VALUE\nZ1,10\nZ2,20\n", string(data))
}

func TestFixCommandMissingIsError(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "fix", "--root", root, "--scenario", "MTP25_2030", "--missing-is-error")
	assert.Error(t, err)
}

func TestFixCommandMalformedFails(t *testing.T) {
	root := t.TempDir()
	bad := writeScenario(t, root, "A", "ZONE,VALUE\n1\n")
	good := writeScenario(t, root, "B", "ZONE,VALUE\n1,10\n")

	out, err := execute(t, "fix", "--root", root, "--scenario", "A,B", "--quoting", "zone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
	assert.Contains(t, out, "A: error:")

	data, _ := os.ReadFile(bad)
	assert.Equal(t, "ZONE,VALUE\n1\n", string(data))
	data, _ = os.ReadFile(good)
	assert.Equal(t, "ZONE,VALUE\n\"1\",10\n", string(data))
}

func TestFixCommandJSONAndWorkbook(t *testing.T) {
	root := t.TempDir()
	writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\n1,10\n")
	xlsx := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := execute(t, "fix", "--root", root, "--scenario", "MTP25_2020",
		"--dry-run", "--json", "--xlsx", xlsx)
	require.NoError(t, err)

	var report struct {
		RunID    string `json:"run_id"`
		Outcomes []struct {
			Outcome string `json:"outcome"`
			DryRun  bool   `json:"dry_run"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, "success", report.Outcomes[0].Outcome)
	assert.True(t, report.Outcomes[0].DryRun)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue("Outcomes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "success", value)
}

func TestStatsCommand(t *testing.T) {
	root := t.TempDir()
	writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\n5,a\n1500,b\n")

	out, err := execute(t, "stats", "--root", root, "--scenario", "MTP25_2020", "--threshold", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "unique count 2")
	assert.Contains(t, out, "max zone 1500")
	assert.Contains(t, out, "samples>100 1")
	assert.Contains(t, out, "{ZONE=1500, VALUE=b}")
}

func TestStatsCommandExplicitFile(t *testing.T) {
	root := t.TempDir()
	path := writeScenario(t, root, "X", "ZONE,VALUE\n1,a\n")

	out, err := execute(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "unique count 1")

	_, err = execute(t, "stats", filepath.Join(root, "missing.csv"))
	assert.Error(t, err)
}

func TestCountCommand(t *testing.T) {
	root := t.TempDir()
	writeScenario(t, root, "MTP25_2020", "ZONE,VALUE\n1,a\n1,b\n2,c\n")

	out, err := execute(t, "count", "--root", root, "--scenario", "MTP25_2020,MTP25_2050NB")
	require.NoError(t, err)
	assert.Equal(t, "MTP25_2020 2\nMTP25_2050NB missing file\n", out)
}

func TestInvalidConfigurationFails(t *testing.T) {
	_, err := execute(t, "fix", "--root", t.TempDir(), "--quoting", "always")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestInitCommandWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zonecsv.yaml")

	out, err := execute(t, "init", "--config", path,
		"--root", "/srv/data", "--scenario", "A,B", "--zone-prefix", "Z")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.Root)
	assert.Equal(t, []string{"A", "B"}, cfg.Scenarios)
	assert.Equal(t, "Z", cfg.ZonePrefix)

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.Root)
}
