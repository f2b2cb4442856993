package catalog_test

import (
	"sync"
	"testing"

	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

func singleOwnerCatalog(t *testing.T, owner, repo string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewCatalog(
		[]string{owner},
		map[string][]string{owner: {repo}},
		nil, nil, nil,
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func TestStore_ReplaceSwapsWholeSnapshot(t *testing.T) {
	first := singleOwnerCatalog(t, "X-lab2018", "open-digger")
	second := singleOwnerCatalog(t, "vuejs", "vue")

	store := catalog.NewStore(first, "default")
	before := store.Snapshot()

	if before.Catalog() != first {
		t.Fatal("Snapshot() should return the seeded catalog")
	}
	if before.Source() != "default" {
		t.Errorf("Source() = %v, want default", before.Source())
	}

	after := store.Replace(second, "remote")

	if after.Version().Equals(before.Version()) {
		t.Error("Replace() must assign a fresh version")
	}
	if after.Source() != "remote" {
		t.Errorf("Source() = %v, want remote", after.Source())
	}
	if after.LoadedAt().Before(before.LoadedAt()) {
		t.Error("LoadedAt() of the new snapshot precedes the old one")
	}

	current := store.Snapshot()
	if current.Catalog() != second {
		t.Error("Snapshot() should return the replaced catalog")
	}
	if !current.Version().Equals(after.Version()) {
		t.Error("Snapshot() version should match the one Replace returned")
	}
}

// Readers racing with a replace must observe either the old snapshot or
// the new one in full, never a blend of the two.
func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	oldCatalog := singleOwnerCatalog(t, "old-owner", "old-repo")
	newCatalog := singleOwnerCatalog(t, "new-owner", "new-repo")

	store := catalog.NewStore(oldCatalog, "default")
	oldVersion := store.Snapshot().Version()

	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan string, 64)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 500; j++ {
				snap := store.Snapshot()
				owner := snap.Catalog().Owners()[0]
				switch {
				case snap.Version().Equals(oldVersion) && owner == "old-owner":
				case !snap.Version().Equals(oldVersion) && owner == "new-owner":
				default:
					select {
					case errs <- "observed mixed snapshot: version and catalog disagree":
					default:
					}
					return
				}
			}
		}()
	}

	close(start)
	store.Replace(newCatalog, "remote")
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
