package migration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps migration state in memory and records executed SQL.
type fakeStore struct {
	applied  []string
	executed []string
	failOn   string
}

func (s *fakeStore) EnsureTable(ctx context.Context) error { return nil }

func (s *fakeStore) Applied(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.applied))
	copy(out, s.applied)
	return out, nil
}

func (s *fakeStore) Apply(ctx context.Context, version, sql string) error {
	if version == s.failOn {
		return fmt.Errorf("boom at %s", version)
	}
	s.applied = append(s.applied, version)
	s.executed = append(s.executed, "up:"+version)
	return nil
}

func (s *fakeStore) Rollback(ctx context.Context, version, sql string) error {
	for i, v := range s.applied {
		if v == version {
			s.applied = append(s.applied[:i], s.applied[i+1:]...)
			break
		}
	}
	s.executed = append(s.executed, "down:"+version)
	return nil
}

func writeMigration(t *testing.T, dir, version string) {
	t.Helper()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, version+".up.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, version+".down.sql"), []byte("SELECT 2;"), 0o644))
}

func newTestManager(t *testing.T, store Store, dir string) (*Manager, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewManager(store, dir, &out, strings.NewReader("")), &out
}

func TestUp_AppliesPendingInOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_second")
	writeMigration(t, dir, "001_first")

	store := &fakeStore{}
	m, out := newTestManager(t, store, dir)

	require.NoError(t, m.Up(context.Background(), ""))
	assert.Equal(t, []string{"up:001_first", "up:002_second"}, store.executed)
	assert.Contains(t, out.String(), "[OK] Applied 2 migration(s)")
}

func TestUp_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")

	store := &fakeStore{}
	m, _ := newTestManager(t, store, dir)
	require.NoError(t, m.Up(context.Background(), ""))

	m2, out := newTestManager(t, store, dir)
	require.NoError(t, m2.Up(context.Background(), ""))
	assert.Contains(t, out.String(), "[OK] No pending migrations")
	assert.Len(t, store.executed, 1)
}

func TestUp_StopsAtTarget(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")
	writeMigration(t, dir, "002_second")
	writeMigration(t, dir, "003_third")

	store := &fakeStore{}
	m, _ := newTestManager(t, store, dir)

	require.NoError(t, m.Up(context.Background(), "002_second"))
	assert.Equal(t, []string{"up:001_first", "up:002_second"}, store.executed)
}

func TestUp_StopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")
	writeMigration(t, dir, "002_second")
	writeMigration(t, dir, "003_third")

	store := &fakeStore{failOn: "002_second"}
	m, _ := newTestManager(t, store, dir)

	err := m.Up(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, []string{"up:001_first"}, store.executed)
}

func TestDown_RollsBackNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")
	writeMigration(t, dir, "002_second")
	writeMigration(t, dir, "003_third")

	store := &fakeStore{applied: []string{"001_first", "002_second", "003_third"}}
	m, _ := newTestManager(t, store, dir)

	require.NoError(t, m.Down(context.Background(), 2))
	assert.Equal(t, []string{"down:003_third", "down:002_second"}, store.executed)
	assert.Equal(t, []string{"001_first"}, store.applied)
}

func TestDown_WarnsOnMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")

	// 002 was applied once but its files are gone
	store := &fakeStore{applied: []string{"001_first", "002_vanished"}}
	m, out := newTestManager(t, store, dir)

	require.NoError(t, m.Down(context.Background(), 2))
	assert.Contains(t, out.String(), "[WARN] Migration 002_vanished not found in files")
	assert.Equal(t, []string{"down:001_first"}, store.executed)
}

func TestDown_NothingApplied(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	m, out := newTestManager(t, store, dir)

	require.NoError(t, m.Down(context.Background(), 1))
	assert.Contains(t, out.String(), "[INFO] No migrations to rollback")
}

func TestReset_ForceRollsBackEverything(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")
	writeMigration(t, dir, "002_second")

	store := &fakeStore{applied: []string{"001_first", "002_second"}}
	m, _ := newTestManager(t, store, dir)

	require.NoError(t, m.Reset(context.Background(), true))
	assert.Empty(t, store.applied)
}

func TestReset_AbortsWithoutConfirmation(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")

	store := &fakeStore{applied: []string{"001_first"}}
	var out bytes.Buffer
	m := NewManager(store, dir, &out, strings.NewReader("no\n"))

	require.NoError(t, m.Reset(context.Background(), false))
	assert.Contains(t, out.String(), "[ABORT] Operation cancelled")
	assert.Equal(t, []string{"001_first"}, store.applied)
}

func TestReset_ConfirmedWithYes(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")

	store := &fakeStore{applied: []string{"001_first"}}
	var out bytes.Buffer
	m := NewManager(store, dir, &out, strings.NewReader("yes\n"))

	require.NoError(t, m.Reset(context.Background(), false))
	assert.Empty(t, store.applied)
}

func TestStatus_ReportsAppliedAndPending(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_first")
	writeMigration(t, dir, "002_second")

	store := &fakeStore{applied: []string{"001_first"}}
	m, out := newTestManager(t, store, dir)

	require.NoError(t, m.Status(context.Background()))
	report := out.String()
	assert.Contains(t, report, "[APPLIED]")
	assert.Contains(t, report, "001_first")
	assert.Contains(t, report, "[PENDING]")
	assert.Contains(t, report, "002_second")
	assert.Contains(t, report, "Total: 2 migrations")
	assert.Contains(t, report, "Applied: 1 migrations")
	assert.Contains(t, report, "Pending: 1 migrations")
}

func TestCreate_WritesTimestampedPair(t *testing.T) {
	dir := t.TempDir()
	m, out := newTestManager(t, nil, dir)

	require.NoError(t, m.Create("add_widgets"))
	assert.Contains(t, out.String(), "[OK] Created migration files:")

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Version, "_add_widgets"))
}

func TestDiscover_IgnoresUnpairedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_complete")
	// up file without its down counterpart stays invisible
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "002_incomplete.up.sql"), []byte("SELECT 1;"), 0o644))

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "001_complete", files[0].Version)
}

func TestDiscover_SortsLexically(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20240210143000_later")
	writeMigration(t, dir, "20240115100000_earlier")

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "20240115100000_earlier", files[0].Version)
	assert.Equal(t, "20240210143000_later", files[1].Version)
}

func TestCreateFiles_VersionOrderFollowsTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first, _, err := CreateFiles(dir, "one", base)
	require.NoError(t, err)
	second, _, err := CreateFiles(dir, "two", base.Add(time.Second))
	require.NoError(t, err)

	assert.Less(t, first, second)
}
