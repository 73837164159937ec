package session

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
	"github.com/burst-go/burst/internal/pkg/logger"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestManagerDirtyTracking(t *testing.T) {
	ctx := context.Background()
	ns := namespace.New(nil)
	m := NewManager(openStore(t), ns, logger.NewStd(false))
	m.SetName("acme")
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.ShouldSave() {
		t.Fatal("fresh session should be clean")
	}

	ns.Set("target", "http://acme.test")
	if !m.ShouldSave() {
		t.Fatal("assignment should make the session dirty")
	}

	m.SetReadOnly(true)
	if m.ShouldSave() {
		t.Fatal("read-only sessions never need saving")
	}
}

func TestManagerAutosaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	req, err := domain.NewRequest("http://acme.test/login")
	if err != nil {
		t.Fatal(err)
	}
	ns := namespace.New(nil)
	ns.SetBuiltins(map[string]any{"help": func() {}})
	ns.Seed("conf", &domain.Config{TermWidth: "auto"})
	first := NewManager(store, ns, logger.NewStd(false))
	first.SetName("acme")
	if err := first.Load(ctx); err != nil {
		t.Fatal(err)
	}
	ns.Set("requests", domain.RequestSet{req})
	ns.Set("count", 3)
	ns.Set("callback", func() {})

	if err := first.Autosave(ctx); err != nil {
		t.Fatalf("Autosave error: %v", err)
	}
	if first.ShouldSave() {
		t.Fatal("session should be clean after autosave")
	}

	fresh := namespace.New(nil)
	second := NewManager(store, fresh, logger.NewStd(false))
	second.SetName("acme")
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if second.ShouldSave() {
		t.Fatal("a freshly loaded session is clean")
	}

	got, ok := fresh.Get("requests")
	if !ok {
		t.Fatal("requests not restored")
	}
	set, ok := got.(domain.RequestSet)
	if !ok || len(set) != 1 || set[0].URL != req.URL {
		t.Fatalf("requests restored as %#v", got)
	}
	if count, _ := fresh.Get("count"); count != float64(3) {
		t.Fatalf("count = %#v", count)
	}
	for _, key := range []string{"conf", "callback", domain.ReservedKey} {
		if _, ok := fresh.Get(key); ok {
			t.Fatalf("%s should not be persisted", key)
		}
	}

	names, err := second.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"acme"}) {
		t.Fatalf("List() = %v", names)
	}
}

func TestManagerAutosaveSkipsCleanAndReadOnly(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	ns := namespace.New(nil)
	m := NewManager(store, ns, logger.NewStd(false))
	if err := m.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if err := m.Autosave(ctx); err != nil {
		t.Fatal(err)
	}
	m.SetReadOnly(true)
	ns.Set("x", 1)
	if err := m.Autosave(ctx); err != nil {
		t.Fatal(err)
	}

	names, err := store.Names(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("nothing should have been saved, got %v", names)
	}
}

func TestSQLiteStoreUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	if err := store.Save(ctx, domain.SessionRecord{Name: "a", Variables: map[string][]byte{"x": []byte("1")}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, domain.SessionRecord{Name: "a", Variables: map[string][]byte{"x": []byte("2")}}); err != nil {
		t.Fatal(err)
	}
	rec, found, err := store.Get(ctx, "a")
	if err != nil || !found {
		t.Fatalf("Get error %v found %v", err, found)
	}
	if string(rec.Variables["x"]) != "2" {
		t.Fatalf("upsert did not replace variables: %q", rec.Variables["x"])
	}
	if rec.ID == "" || rec.UpdatedAt.IsZero() {
		t.Fatalf("record metadata missing: %+v", rec)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.Get(ctx, "a"); found {
		t.Fatal("session should be deleted")
	}
}

func TestManagerRemove(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	if err := store.Save(ctx, domain.SessionRecord{Name: "old"}); err != nil {
		t.Fatal(err)
	}
	m := NewManager(store, namespace.New(nil), logger.NewStd(false))

	if err := m.Remove(ctx, domain.DefaultSessionName); err == nil {
		t.Fatal("the active session must not be removable")
	}
	if err := m.Remove(ctx, "missing"); err == nil {
		t.Fatal("removing an unknown session should fail")
	}
	if err := m.Remove(ctx, "old"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	names, err := m.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("List() = %v after remove", names)
	}
}
