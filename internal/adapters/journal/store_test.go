package journal_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.goodgym.dev/launcher/internal/adapters/journal"
	"go.goodgym.dev/launcher/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := journal.NewStore()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record := domain.RunRecord{
		Script:      filepath.Join(root, "server", "goodgym_api.py"),
		Interpreter: "/usr/bin/python3",
		StartedAt:   started,
		FinishedAt:  started.Add(time.Minute),
		ExitCode:    1,
		Outcome:     domain.OutcomeFailed,
	}

	require.NoError(t, store.Put(root, record))

	got, err := store.Get(root, record.Script)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.Script, got.Script)
	assert.Equal(t, record.Interpreter, got.Interpreter)
	assert.True(t, record.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, time.Minute, got.Duration())
	assert.Equal(t, 1, got.ExitCode)
	assert.Equal(t, domain.OutcomeFailed, got.Outcome)
}

func TestStore_Get_NeverRan(t *testing.T) {
	got, err := journal.NewStore().Get(t.TempDir(), "/opt/goodgym/server/goodgym_api.py")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Put_Replaces(t *testing.T) {
	root := t.TempDir()
	store := journal.NewStore()
	script := "/opt/goodgym/server/goodgym_api.py"

	require.NoError(t, store.Put(root, domain.RunRecord{Script: script, Outcome: domain.OutcomeFailed, ExitCode: 2}))
	require.NoError(t, store.Put(root, domain.RunRecord{Script: script, Outcome: domain.OutcomeInterrupted, Restarts: 3}))

	got, err := store.Get(root, script)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.OutcomeInterrupted, got.Outcome)
	assert.Equal(t, 0, got.ExitCode)
	assert.Equal(t, 3, got.Restarts)

	entries, err := os.ReadDir(filepath.Join(root, domain.DefaultRunsPath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_Layout(t *testing.T) {
	root := t.TempDir()
	script := "/opt/goodgym/server/goodgym_api.py"

	require.NoError(t, journal.NewStore().Put(root, domain.RunRecord{Script: script}))

	hash := sha256.Sum256([]byte(script))
	expected := filepath.Join(root, domain.DefaultRunsPath(), hex.EncodeToString(hash[:])+".json")
	info, err := os.Stat(expected)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestStore_Get_Corrupt(t *testing.T) {
	root := t.TempDir()
	script := "/opt/goodgym/server/goodgym_api.py"
	store := journal.NewStore()
	require.NoError(t, store.Put(root, domain.RunRecord{Script: script}))

	hash := sha256.Sum256([]byte(script))
	path := filepath.Join(root, domain.DefaultRunsPath(), hex.EncodeToString(hash[:])+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	_, err := store.Get(root, script)
	require.ErrorContains(t, err, domain.ErrJournalReadFailed.Error())
}

func TestStore_Put_Unwritable(t *testing.T) {
	root := t.TempDir()
	// A file where the state directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.StateDirName), nil, domain.FilePerm))

	err := journal.NewStore().Put(root, domain.RunRecord{Script: "api.py"})
	require.ErrorContains(t, err, domain.ErrJournalWriteFailed.Error())
}
