package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
)

func TestSummarize_OneToFive(t *testing.T) {
	t.Parallel()

	res := run(t, "1\n2\n3\n4\n5\n", "summarize")
	require.NoError(t, res.err)

	out := lines(res.stdout)
	require.Len(t, out, 12)
	assert.Equal(t, []string{"Count: 5", "Minimum: 1", "Maximum: 5", "Mean: 3", "Variance: 2.5"}, out[:5])
	assert.Equal(t, "Population variance: 2", out[8])
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	res := run(t, "", "summarize")
	require.NoError(t, res.err)

	out := lines(res.stdout)
	require.Len(t, out, 12)
	assert.Equal(t, "Count: 0", out[0])
	assert.Equal(t, "Mean: undefined", out[3])
}

func TestSummarize_ParseErrorPrintsNoStatistics(t *testing.T) {
	t.Parallel()

	res := run(t, "1\nabc\n3\n", "summarize")
	require.Error(t, res.err)

	var parseErr *stream.ParseError
	require.ErrorAs(t, res.err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "abc", parseErr.Text)
	assert.Empty(t, res.stdout)
}

func TestSummarize_WhitespaceIsTrimmed(t *testing.T) {
	t.Parallel()

	res := run(t, "  1 \n\t3\n", "summarize")
	require.NoError(t, res.err)
	assert.Equal(t, "Mean: 2", lines(res.stdout)[3])
}

func TestSummarize_JSONFormat(t *testing.T) {
	t.Parallel()

	res := run(t, "5\n5\n5\n", "summarize", "-f", "json")
	require.NoError(t, res.err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
	assert.InDelta(t, 0.0, decoded["variance"], 0)
	assert.Nil(t, decoded["skewness"])
}

func TestSummarize_UnknownFormat(t *testing.T) {
	t.Parallel()

	res := run(t, "1\n", "summarize", "--format", "xml")
	require.ErrorIs(t, res.err, config.ErrInvalidFormat)
	assert.Empty(t, res.stdout)
}

func TestMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "one_to_five", input: "1\n2\n3\n4\n5\n", expected: "3\n"},
		{name: "fraction", input: "0.1\n0.2\n", expected: "0.15000000000000002\n"},
		{name: "empty", input: "", expected: "undefined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.input, "mean")
			require.NoError(t, res.err)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestVariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		input    string
		expected string
	}{
		{name: "population_default", args: nil, input: "1\n2\n3\n4\n5\n", expected: "2\n"},
		{name: "sample", args: []string{"-t", "sample"}, input: "1\n2\n3\n4\n5\n", expected: "2.5\n"},
		{name: "single_sample", args: []string{"--type", "sample"}, input: "7\n", expected: "0\n"},
		{name: "empty", args: nil, input: "", expected: "undefined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.input, append([]string{"variance"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestVariance_UnknownType(t *testing.T) {
	t.Parallel()

	res := run(t, "1\n", "variance", "-t", "other")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown variance type")
}

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// field returns the number printed after "label: " in a summary line.
func field(t *testing.T, line, label string) float64 {
	t.Helper()

	value, ok := strings.CutPrefix(line, label+": ")
	require.True(t, ok, line)

	f, err := strconv.ParseFloat(value, 64)
	require.NoError(t, err)

	return f
}

func TestSummarize_FilesMatchConcatenatedInput(t *testing.T) {
	t.Parallel()

	first := writeInput(t, "1\n2\n")
	second := writeInput(t, "3\n4\n5\n")

	res := run(t, "", "summarize", first, second)
	require.NoError(t, res.err)

	out := lines(res.stdout)
	require.Len(t, out, 12)
	assert.Equal(t, []string{"Count: 5", "Minimum: 1", "Maximum: 5"}, out[:3])
	assert.InDelta(t, 3.0, field(t, out[3], "Mean"), 1e-12)
	assert.InDelta(t, 2.5, field(t, out[4], "Variance"), 1e-12)
	assert.InDelta(t, 2.0, field(t, out[8], "Population variance"), 1e-12)
}

func TestMean_FileAndStdin(t *testing.T) {
	t.Parallel()

	path := writeInput(t, "10\n")

	res := run(t, "2\n", "mean", path, "-")
	require.NoError(t, res.err)
	assert.Equal(t, "6\n", res.stdout)
}

func TestVariance_EmptyFileIsSkipped(t *testing.T) {
	t.Parallel()

	res := run(t, "", "variance", writeInput(t, ""), writeInput(t, "1\n3\n"))
	require.NoError(t, res.err)
	assert.Equal(t, "1\n", res.stdout)
}

func TestSummarize_ParseErrorNamesFile(t *testing.T) {
	t.Parallel()

	good := writeInput(t, "1\n")
	bad := writeInput(t, "2\nx\n")

	res := run(t, "", "summarize", good, bad)
	require.Error(t, res.err)

	var parseErr *stream.ParseError
	require.ErrorAs(t, res.err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Contains(t, res.err.Error(), bad)
	assert.Empty(t, res.stdout)
}

func TestSummarize_MissingFile(t *testing.T) {
	t.Parallel()

	res := run(t, "", "summarize", filepath.Join(t.TempDir(), "absent.txt"))
	require.ErrorIs(t, res.err, os.ErrNotExist)
	assert.Empty(t, res.stdout)
}
