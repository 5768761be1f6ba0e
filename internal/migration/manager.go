package migration

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Manager drives migrations against a Store using the paired SQL files in
// one directory.
type Manager struct {
	store Store
	dir   string
	out   io.Writer
	in    io.Reader
}

// NewManager creates a migration manager writing its report to out and
// reading confirmations from in.
func NewManager(store Store, dir string, out io.Writer, in io.Reader) *Manager {
	return &Manager{store: store, dir: dir, out: out, in: in}
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format+"\n", args...)
}

// Up applies pending migrations in version order. A non-empty target stops
// after the last version lexically at or below it.
func (m *Manager) Up(ctx context.Context, target string) error {
	if err := m.store.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := m.store.Applied(ctx)
	if err != nil {
		return err
	}
	available, err := Discover(m.dir)
	if err != nil {
		return err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
	}

	var pending []File
	for _, f := range available {
		if !appliedSet[f.Version] {
			pending = append(pending, f)
		}
	}
	if len(pending) == 0 {
		m.printf("[OK] No pending migrations")
		return nil
	}
	if target != "" {
		var limited []File
		for _, f := range pending {
			if f.Version <= target {
				limited = append(limited, f)
			}
		}
		pending = limited
	}

	for _, f := range pending {
		if err := m.apply(ctx, f); err != nil {
			return err
		}
	}

	m.printf("\n[OK] Applied %d migration(s)", len(pending))
	return nil
}

func (m *Manager) apply(ctx context.Context, f File) error {
	m.printf("[*] Applying migration: %s", f.Version)
	sql, err := os.ReadFile(f.UpPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.UpPath, err)
	}
	if err := m.store.Apply(ctx, f.Version, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", f.Version, err)
	}
	m.printf("[OK] Migration %s applied successfully", f.Version)
	return nil
}

// Down rolls back the most recent migrations, newest first. A version whose
// files are gone is skipped with a warning.
func (m *Manager) Down(ctx context.Context, steps int) error {
	if err := m.store.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := m.store.Applied(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.printf("[INFO] No migrations to rollback")
		return nil
	}
	available, err := Discover(m.dir)
	if err != nil {
		return err
	}
	byVersion := make(map[string]File, len(available))
	for _, f := range available {
		byVersion[f.Version] = f
	}

	if steps > len(applied) {
		steps = len(applied)
	}
	toRollback := applied[len(applied)-steps:]

	for i := len(toRollback) - 1; i >= 0; i-- {
		version := toRollback[i]
		f, ok := byVersion[version]
		if !ok {
			m.printf("[WARN] Migration %s not found in files", version)
			continue
		}
		if err := m.rollback(ctx, f); err != nil {
			return err
		}
	}

	m.printf("\n[OK] Rolled back %d migration(s)", len(toRollback))
	return nil
}

func (m *Manager) rollback(ctx context.Context, f File) error {
	m.printf("[*] Rolling back migration: %s", f.Version)
	sql, err := os.ReadFile(f.DownPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.DownPath, err)
	}
	if err := m.store.Rollback(ctx, f.Version, string(sql)); err != nil {
		return fmt.Errorf("rollback %s: %w", f.Version, err)
	}
	m.printf("[OK] Migration %s rolled back successfully", f.Version)
	return nil
}

// Reset rolls back every applied migration. Without force it asks for an
// explicit "yes" first.
func (m *Manager) Reset(ctx context.Context, force bool) error {
	if err := m.store.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := m.store.Applied(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.printf("[INFO] No migrations to rollback")
		return nil
	}

	if !force {
		fmt.Fprint(m.out, "[WARN] This will rollback ALL migrations. Continue? (yes/no): ")
		reader := bufio.NewReader(m.in)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
			m.printf("[ABORT] Operation cancelled")
			return nil
		}
	}

	return m.Down(ctx, len(applied))
}

// Status prints the applied/pending state of every visible migration.
func (m *Manager) Status(ctx context.Context) error {
	if err := m.store.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := m.store.Applied(ctx)
	if err != nil {
		return err
	}
	available, err := Discover(m.dir)
	if err != nil {
		return err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
	}

	divider := strings.Repeat("=", 70)
	m.printf("\n%s", divider)
	m.printf("Migration Status")
	m.printf("%s\n", divider)

	if len(available) == 0 {
		m.printf("[INFO] No migrations found")
		return nil
	}

	for _, f := range available {
		status := "[PENDING]"
		if appliedSet[f.Version] {
			status = "[APPLIED]"
		}
		m.printf("%-12s | %s", status, f.Version)
	}

	m.printf("\n%s", divider)
	m.printf("Total: %d migrations", len(available))
	m.printf("Applied: %d migrations", len(applied))
	m.printf("Pending: %d migrations", len(available)-len(applied))
	m.printf("%s\n", divider)
	return nil
}

// Create writes a new empty migration pair into the directory.
func (m *Manager) Create(name string) error {
	upName, downName, err := CreateFiles(m.dir, name, time.Now())
	if err != nil {
		return err
	}
	m.printf("[OK] Created migration files:")
	m.printf("    %s", upName)
	m.printf("    %s", downName)
	return nil
}
