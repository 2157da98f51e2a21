package store

import (
	"context"
	"sort"
	"testing"
)

// adapterTest exercises the Store contract shared by every backend.
func adapterTest(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "students"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent with no error", ok, err)
	}

	if err := st.Set(ctx, "students", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := st.Get(ctx, "students")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want present", ok, err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get() = %s, want the stored value", data)
	}

	// Set replaces the whole value.
	if err := st.Set(ctx, "students", []byte(`[]`)); err != nil {
		t.Fatalf("Set() replace error = %v", err)
	}
	data, _, _ = st.Get(ctx, "students")
	if string(data) != `[]` {
		t.Errorf("Get() after replace = %s, want []", data)
	}

	if err := st.Set(ctx, "teachers", []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "students" || keys[1] != "teachers" {
		t.Errorf("Keys() = %v, want [students teachers]", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	adapterTest(t, NewMemory())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	value := []byte(`[1]`)
	if err := st.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[1] = '9'

	got, _, _ := st.Get(ctx, "k")
	if string(got) != `[1]` {
		t.Errorf("Get() = %s, caller mutation leaked into the store", got)
	}

	got[1] = '8'
	again, _, _ := st.Get(ctx, "k")
	if string(again) != `[1]` {
		t.Errorf("Get() = %s, returned slice aliases the store", again)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	adapterTest(t, st)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if err := st.Set(ctx, "students", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile() reopen error = %v", err)
	}
	data, ok, err := reopened.Get(ctx, "students")
	if err != nil || !ok {
		t.Fatalf("Get() after reopen = ok=%v err=%v, want present", ok, err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get() after reopen = %s, want persisted value", data)
	}
}
