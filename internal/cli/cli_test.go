package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"up", "down", "status"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	down, _, err := cmd.Find([]string{"down"})
	require.NoError(t, err)
	steps := down.Flags().Lookup("steps")
	require.NotNil(t, steps)
	assert.Equal(t, "n", steps.Shorthand)
	assert.Equal(t, "1", steps.DefValue)
}

func TestUpStatusDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	flags := []string{"--driver", "sqlite3", "--sqlite-path", path}

	out, err := execute(t, append([]string{"up"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0001_create_venue_artist")
	assert.Contains(t, out, "applied 0007_seed_genres")

	out, err = execute(t, append([]string{"up"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "nothing applied\n", out)

	out, err = execute(t, append([]string{"down", "-n", "2"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "reverted 0007_seed_genres\nreverted 0006_add_artist_fields_and_genres\n", out)

	out, err = execute(t, append([]string{"status"}, flags...)...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "VERSION"))
	assert.NotContains(t, lines[5], "pending")
	assert.Contains(t, lines[6], "pending")
	assert.Contains(t, lines[7], "pending")
}

func TestInvalidDriver(t *testing.T) {
	_, err := execute(t, "status", "--driver", "postgres")
	assert.ErrorContains(t, err, "postgres")
}

func TestDownRejectsZeroSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	_, err := execute(t, "down", "--steps", "0", "--driver", "sqlite3", "--sqlite-path", path)
	assert.Error(t, err)
}
