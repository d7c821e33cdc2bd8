package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integral/config"
	"integral/maths"
)

// execute 运行命令并返回标准输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCoeffs(t *testing.T) {
	got, err := ParseCoeffs("1, 6,0 -12;0,17")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 6, 0, -12, 0, 17}, got)

	got, err = ParseCoeffs("1e-3,-2.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.001, -2.5}, got)

	_, err = ParseCoeffs(" , ")
	assert.Error(t, err)
	_, err = ParseCoeffs("1,x")
	assert.ErrorContains(t, err, "coefficient 1")
}

func TestPrintFraction(t *testing.T) {
	var buf bytes.Buffer
	printFraction(&buf, maths.NewPoly(1.0, 6, 0, -12, 0, 17), maths.NewPoly(14.0, 12, -18))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "17x^5 - 12x^3 + 6x + 1", lines[1])
	assert.Equal(t, strings.Repeat("-", len(lines[1])), lines[2])
	assert.Equal(t, "-18x^2 + 12x + 14", lines[3])
}

func TestRootCommand(t *testing.T) {
	out, err := execute(t, "--num", "1,6,0,-12,0,17", "--den", "14,12,-18", "-a", "2", "-b", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "17x^5 - 12x^3 + 6x + 1")
	assert.Contains(t, out, "Value on [2, 3]: -22.43661")
	assert.NotContains(t, out, "Roots of the denominator")
}

func TestRootCommandVerbose(t *testing.T) {
	out, err := execute(t, "--num", "1", "--den", "1,0,1", "-a", "0", "-b", "1", "--seed", "3", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Roots of the denominator")
	assert.Contains(t, out, "r1 = 1i (multiplicity 1)")
	assert.Contains(t, out, "Value on [0, 1]: 0.785398163")
}

func TestRootCommandOutputs(t *testing.T) {
	dir := t.TempDir()
	record := filepath.Join(dir, "record.json")
	chart := filepath.Join(dir, "chart.html")
	plot := filepath.Join(dir, "plot.svg")
	_, err := execute(t, "--num", "1,2", "--den", "2,-2,1,-1", "-a", "2", "-b", "3", "--seed", "1",
		"--record", record, "--chart", chart, "--plot", plot)
	require.NoError(t, err)

	for _, path := range []string{record, chart, plot} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
	data, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"intervals"`)
}

func TestRootCommandErrors(t *testing.T) {
	_, err := execute(t, "--num", "1", "--den", "-1,1", "-a", "0", "-b", "2", "--seed", "1")
	assert.ErrorContains(t, err, "pole")

	_, err = execute(t, "--num", "1", "--den", "-1,1", "-a", "0", "-b", "2", "--seed", "1", "--check-poles=false")
	assert.NoError(t, err)

	_, err = execute(t, "--num", "1", "--den", "5")
	assert.ErrorContains(t, err, "degenerate")

	_, err = execute(t, "--num", "1,a", "--den", "1,1")
	assert.ErrorContains(t, err, "numerator")

	_, err = execute(t, "--den", "1,1")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integral.yaml")
	_, err := execute(t, "init-config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	out, err := execute(t, "--config", path, "--num", "1", "--den", "1,1", "-a", "0", "-b", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Value on [0, 1]: 0.693147180559945")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
problems:
  - name: end-to-end
    numerator: [1, 6, 0, -12, 0, 17]
    denominator: [14, 12, -18]
    a: 2
    b: 3
  - name: arctan
    numerator: [1]
    denominator: [1, 0, 1]
    a: 0
    b: 1
  - numerator: [1]
    denominator: [1, 1]
    a: 0
    b: 1
`), 0o644))
	results := filepath.Join(dir, "results.yaml")

	out, err := execute(t, "batch", path, "--seed", "11", "-w", "2", "-o", results)
	require.NoError(t, err)
	assert.Contains(t, out, "end-to-end")
	assert.Contains(t, out, "-22.43661")
	assert.Contains(t, out, "0.785398163")
	assert.Contains(t, out, "#3")

	data, err := os.ReadFile(results)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: arctan")
}

func TestBatchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
problems:
  - name: pole
    numerator: [1]
    denominator: [-1, 1]
    a: 0
    b: 2
  - name: fine
    numerator: [1]
    denominator: [1, 1]
    a: 0
    b: 1
`), 0o644))

	out, err := execute(t, "batch", path, "--seed", "1")
	assert.ErrorContains(t, err, "1 of 2 problems failed")
	assert.Contains(t, out, "pole")
	assert.Contains(t, out, "0.693147180559945")
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("problems: []\n"), 0o644))
	_, err := LoadBatch(empty)
	assert.Error(t, err)

	_, err = LoadBatch(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
