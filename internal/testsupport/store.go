package testsupport

import (
	"context"
	"fmt"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/store"
)

// MustOpenStore opens a document store for tests and registers cleanup.
func MustOpenStore(t testing.TB) *store.Store {
	t.Helper()

	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustLoadDocument loads a document into the store, failing the test on error.
func MustLoadDocument(t testing.TB, st *store.Store, doc *script.Document) {
	t.Helper()

	if err := st.LoadDocument(context.Background(), doc); err != nil {
		t.Fatalf("store.LoadDocument: %v", err)
	}
}

// SequentialIDs returns an ID generator yielding id-1, id-2, ... for
// deterministic assertions.
func SequentialIDs() script.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
