package settings

import (
	"context"
	"testing"

	"github.com/sawmill/pool-core/internal/infrastructure/storage"
)

// ─── Load ───

func TestLoad_FreshStoreInitializesDefaults(t *testing.T) {
	store := storage.NewMemory()
	m, initialized, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !initialized {
		t.Error("fresh store should report initialized")
	}
	rec := m.Get()
	if rec.FilterPoolMinutes != DefaultFilterPoolMinutes ||
		rec.FilterSpaMinutes != DefaultFilterSpaMinutes ||
		rec.FilterStartHour != DefaultFilterStartHour ||
		rec.FilterStartPM != DefaultFilterStartPM ||
		rec.HeaterAllowed != DefaultHeaterAllowed {
		t.Errorf("defaults not applied: %+v", rec)
	}

	// Defaults were persisted: a second load sees the record.
	m2, initialized, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if initialized {
		t.Error("second load should not reinitialize")
	}
	if m2.Get() != rec {
		t.Errorf("reloaded record %+v != %+v", m2.Get(), rec)
	}
}

func TestLoad_GarbledHeaderResets(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Write(context.Background(), "config", []byte("POOLC2\x14\x0a\x01\x00\x01")); err != nil {
		t.Fatal(err)
	}

	m, initialized, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !initialized {
		t.Error("foreign header should reset to defaults")
	}
	if got := m.Get().FilterPoolMinutes; got != DefaultFilterPoolMinutes {
		t.Errorf("FilterPoolMinutes = %d, want default", got)
	}
}

func TestLoad_ShortRecordResets(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Write(context.Background(), "config", []byte("POOLC3")); err != nil {
		t.Fatal(err)
	}
	_, initialized, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !initialized {
		t.Error("truncated record should reset to defaults")
	}
}

func TestLoad_PersistFailureIsFatal(t *testing.T) {
	store := storage.NewMemory()
	store.FailWrites(storage.ErrWriteFailed)
	if _, _, err := Load(context.Background(), store); err == nil {
		t.Error("Load should fail when the reset record cannot be persisted")
	}
}

// ─── Save ───

func TestSave_OnlyWhenDirty(t *testing.T) {
	store := storage.NewMemory()
	m, _, err := Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}

	// Clean record: a broken store must not matter.
	store.FailWrites(storage.ErrWriteFailed)
	if err := m.Save(context.Background()); err != nil {
		t.Errorf("Save of clean record wrote: %v", err)
	}

	m.Adjust(FieldFilterPoolMinutes, 5)
	if !m.Dirty() {
		t.Fatal("Adjust should mark the record dirty")
	}
	if err := m.Save(context.Background()); err == nil {
		t.Error("dirty Save against failing store should error")
	}

	store.FailWrites(nil)
	if err := m.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.Dirty() {
		t.Error("Save should clear the dirty flag")
	}

	m2, _, err := Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	if got := m2.Get().FilterPoolMinutes; got != DefaultFilterPoolMinutes+5 {
		t.Errorf("persisted FilterPoolMinutes = %d, want %d", got, DefaultFilterPoolMinutes+5)
	}
}

// ─── Field editing ───

func TestAdjust(t *testing.T) {
	store := storage.NewMemory()
	m, _, err := Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}

	// Clamp at the lower bound.
	m.Adjust(FieldFilterSpaMinutes, -100)
	if got := m.Get().FilterSpaMinutes; got != minFilterMinutes {
		t.Errorf("FilterSpaMinutes = %d, want clamp at %d", got, minFilterMinutes)
	}

	// Clamp at the upper bound.
	m.Adjust(FieldFilterPoolMinutes, 1000)
	if got := m.Get().FilterPoolMinutes; got != maxFilterMinutes {
		t.Errorf("FilterPoolMinutes = %d, want clamp at %d", got, maxFilterMinutes)
	}

	// Hour stays within 1-12.
	m.Adjust(FieldFilterStartHour, -5)
	if got := m.Get().FilterStartHour; got != 1 {
		t.Errorf("FilterStartHour = %d, want 1", got)
	}
	m.Adjust(FieldFilterStartHour, 20)
	if got := m.Get().FilterStartHour; got != 12 {
		t.Errorf("FilterStartHour = %d, want 12", got)
	}

	// Two-state fields toggle on any delta.
	m.Adjust(FieldFilterStartMeridiem, 1)
	if !m.Get().FilterStartPM {
		t.Error("meridiem should have toggled to PM")
	}
	m.Adjust(FieldHeaterAllowed, -1)
	if m.Get().HeaterAllowed {
		t.Error("heater allowed should have toggled off")
	}
}

func TestAdjust_NoChangeStaysClean(t *testing.T) {
	store := storage.NewMemory()
	m, _, err := Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	// Persist the initialization so the flag starts clean.
	if err := m.Save(context.Background()); err != nil {
		t.Fatal(err)
	}

	m.Adjust(FieldFilterStartHour, 0)
	if m.Dirty() {
		t.Error("zero delta should not dirty the record")
	}

	// Pushing against a bound the value already sits at changes nothing.
	m.Adjust(FieldFilterStartHour, -1) // 1 -> clamp 1
	if m.Dirty() {
		t.Error("clamped no-op should not dirty the record")
	}
}

func TestFieldValues(t *testing.T) {
	store := storage.NewMemory()
	m, _, err := Load(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	want := map[Field]string{
		FieldFilterPoolMinutes:   "20",
		FieldFilterSpaMinutes:    "10",
		FieldFilterStartHour:     "1",
		FieldFilterStartMeridiem: "AM",
		FieldHeaterAllowed:       "yes",
	}
	for f := Field(0); f < NumFields; f++ {
		if got := m.Value(f); got != want[f] {
			t.Errorf("%s = %q, want %q", f.Label(), got, want[f])
		}
	}
}
