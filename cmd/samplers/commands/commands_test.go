package commands_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/samplers/cmd/samplers/commands"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with an isolated config file.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	return runTo(t, &bytes.Buffer{}, stdin, args...)
}

func runTo(t *testing.T, stdout io.Writer, stdin string, args ...string) result {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "samplers.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: warn\n"), 0o600))

	var stderr bytes.Buffer

	root := commands.NewRootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(&stderr)

	err := root.Execute()

	res := result{stderr: stderr.String(), err: err}
	if buf, ok := stdout.(*bytes.Buffer); ok {
		res.stdout = buf.String()
	}

	return res
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
