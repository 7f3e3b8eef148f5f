package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// storeUnderTest lets the same contract tests run against both
// implementations.
func storeUnderTest(t *testing.T, name string) Store {
	t.Helper()
	switch name {
	case "memory":
		return NewMemory()
	case "sqlite":
		s, err := Open(context.Background(), Config{
			Path:        filepath.Join(t.TempDir(), "regions.db"),
			WALMode:     true,
			BusyTimeout: 1,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() {
			if err := s.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		})
		return s
	}
	t.Fatalf("unknown store %q", name)
	return nil
}

func TestStore_Contract(t *testing.T) {
	for _, impl := range []string{"memory", "sqlite"} {
		t.Run(impl, func(t *testing.T) {
			ctx := context.Background()
			s := storeUnderTest(t, impl)

			t.Run("read absent region", func(t *testing.T) {
				_, err := s.Read(ctx, "nope")
				if !errors.Is(err, ErrNoRegion) {
					t.Errorf("Read(absent) = %v, want ErrNoRegion", err)
				}
			})

			t.Run("write then read", func(t *testing.T) {
				want := []byte{0x01, 0x02, 0x03}
				if err := s.Write(ctx, "config", want); err != nil {
					t.Fatalf("Write: %v", err)
				}
				got, err := s.Read(ctx, "config")
				if err != nil {
					t.Fatalf("Read: %v", err)
				}
				if string(got) != string(want) {
					t.Errorf("Read = %v, want %v", got, want)
				}
			})

			t.Run("overwrite replaces whole region", func(t *testing.T) {
				if err := s.Write(ctx, "config", []byte("longer contents")); err != nil {
					t.Fatalf("Write: %v", err)
				}
				if err := s.Write(ctx, "config", []byte("x")); err != nil {
					t.Fatalf("Write: %v", err)
				}
				got, err := s.Read(ctx, "config")
				if err != nil {
					t.Fatalf("Read: %v", err)
				}
				if string(got) != "x" {
					t.Errorf("Read = %q, want %q", got, "x")
				}
			})

			t.Run("erase", func(t *testing.T) {
				if err := s.Write(ctx, "gone", []byte("bye")); err != nil {
					t.Fatalf("Write: %v", err)
				}
				if err := s.Erase(ctx, "gone"); err != nil {
					t.Fatalf("Erase: %v", err)
				}
				if _, err := s.Read(ctx, "gone"); !errors.Is(err, ErrNoRegion) {
					t.Errorf("Read(erased) = %v, want ErrNoRegion", err)
				}
				// Erasing again is a no-op.
				if err := s.Erase(ctx, "gone"); err != nil {
					t.Errorf("Erase(absent) = %v, want nil", err)
				}
			})
		})
	}
}

func TestMemory_FailWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("flash worn out")

	m.FailWrites(boom)
	if err := m.Write(ctx, "config", []byte{1}); !errors.Is(err, boom) {
		t.Errorf("Write = %v, want injected error", err)
	}

	m.FailWrites(nil)
	if err := m.Write(ctx, "config", []byte{1}); err != nil {
		t.Errorf("Write after heal = %v, want nil", err)
	}
}

func TestSQLite_ReopenKeepsRegions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "regions.db")
	cfg := Config{Path: path, WALMode: true, BusyTimeout: 1}

	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Write(ctx, "eventlog/header", []byte{9, 0, 4, 0}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close() //nolint:errcheck // test cleanup

	got, err := s2.Read(ctx, "eventlog/header")
	if err != nil {
		t.Fatalf("Read after reopen: %v", err)
	}
	if len(got) != 4 || got[0] != 9 || got[2] != 4 {
		t.Errorf("Read after reopen = %v, want [9 0 4 0]", got)
	}
}
