package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"applauncher-backend/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChunkCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("Eerste alinea.\n\nTweede alinea."), 0o644))

	out, err := execute(t, "", "chunk", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- chunk 0 (offset 0,")
	assert.Contains(t, out, "Eerste alinea.")
	assert.Contains(t, out, "1 chunks\n")
}

func TestChunkCommand_StdinWithBudget(t *testing.T) {
	text := strings.Repeat("woord ", 40)
	out, err := execute(t, text, "chunk", "--max-tokens", "10")
	require.NoError(t, err)

	want := len(service.NewChunker(service.NewTokenizer(nil), 10, 10).Split(text))
	assert.Greater(t, want, 1)
	assert.Contains(t, out, "\n"+strconv.Itoa(want)+" chunks\n")
}

func TestChunkCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "", "chunk", filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorContains(t, err, "failed to read input")
}

func TestSimplifyCommand_RejectsBadLevel(t *testing.T) {
	_, err := execute(t, "tekst", "simplify", "--level", "C1")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "INVALID_LEVEL", verr.Code)
}

func TestSimplifyCommand_EmptyInput(t *testing.T) {
	out, err := execute(t, "", "simplify", "--stream")
	require.NoError(t, err)
	assert.Equal(t, "{\"total_chunks\":0}\n", out)
}
