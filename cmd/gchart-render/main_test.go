package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestKindsCommand(t *testing.T) {
	out, _, err := execute(t, "kinds")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "area"))
	assert.Contains(t, out, "LineChart")
	assert.Regexp(t, `pie\s+PieChart\s+corechart\s+rendered`, out)
	assert.Regexp(t, `table\s+Table\s+table\s+-`, out)
}

func TestContainerCommand(t *testing.T) {
	out, _, err := execute(t, "container", "chart1", "--attr", "class=wide")
	require.NoError(t, err)
	assert.Equal(t, `<div id="chart1" class="wide"></div>`+"\n", out)

	_, _, err = execute(t, "container", "")
	assert.Error(t, err)
}

func TestVisualizeCommand(t *testing.T) {
	req := writeFile(t, "req.yaml", `
kind: pie
title: Hours
columns:
  - {dataType: string, label: Task}
  - {dataType: number, label: Hours}
rows:
  - [Work, 11]
`)
	out, _, err := execute(t, "visualize", req, "--id", "hours")
	require.NoError(t, err)
	assert.Contains(t, out, `document.getElementById("hours")`)
	assert.Contains(t, out, `arrayToDataTable([["Task","Hours"],["Work",11]])`)

	table := writeFile(t, "table.yaml", "kind: table\n")
	_, _, err = execute(t, "visualize", table)
	assert.EqualError(t, err, `chart kind "table" is not rendered`)
}

func TestRenderCommand(t *testing.T) {
	page := writeFile(t, "page.yaml", `
title: CLI page
charts:
  - id: visits
    request:
      kind: line
      columns:
        - {dataType: number, label: Day}
        - {dataType: number, label: Visits}
      rows:
        - [1, 10]
  - id: grid
    request: {kind: table}
`)
	output := filepath.Join(t.TempDir(), "out.html")

	_, stderr, err := execute(t, "render", page, "-o", output, "--viz-version", "45")
	require.NoError(t, err)
	assert.Contains(t, stderr, `skipped chart "grid"`)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>CLI page</title>")
	assert.Contains(t, string(data), `google.load("visualization", "45", {packages: ["corechart"]});`)
}

func TestRenderCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read page")
}

func TestPublishCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOCAL_PAGES_DIR", dir)
	page := writeFile(t, "page.yaml", "title: Published\ncharts: []\n")

	out, _, err := execute(t, "publish", page)
	require.NoError(t, err)

	stored := strings.TrimSpace(out)
	assert.Regexp(t, `^pages/\d{4}/\d{2}/\d{2}/\d{8}-\d{6}-published/index\.html$`, stored)
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Published</title>")
}
