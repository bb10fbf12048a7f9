package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prodlens/backend/internal/domain"
)

func TestSessionStore_AddAssignsSequentialIDs(t *testing.T) {
	store := NewSessionStore()

	id1 := store.Add(&domain.ProductRecord{Name: "first"})
	id2 := store.Add(&domain.ProductRecord{Name: "second"})

	if id1 != "product_1" {
		t.Errorf("first ID = %s, want product_1", id1)
	}
	if id2 != "product_2" {
		t.Errorf("second ID = %s, want product_2", id2)
	}

	record, ok := store.Get(id1)
	if !ok {
		t.Fatalf("Get(%s) not found", id1)
	}
	if record.Name != "first" {
		t.Errorf("record.Name = %s, want first", record.Name)
	}
}

func TestSessionStore_GetUnknownID(t *testing.T) {
	store := NewSessionStore()

	if _, ok := store.Get("product_99"); ok {
		t.Error("Get(product_99) = found, want not found")
	}
}

func TestSessionStore_GetAllReportsMissing(t *testing.T) {
	store := NewSessionStore()
	id := store.Add(&domain.ProductRecord{Name: "only"})

	records, missing := store.GetAll([]string{id, "product_7", "product_8"})

	if len(records) != 1 || records[0].Name != "only" {
		t.Errorf("records = %v, want the one stored record", records)
	}
	if len(missing) != 2 || missing[0] != "product_7" || missing[1] != "product_8" {
		t.Errorf("missing = %v, want [product_7 product_8]", missing)
	}
}

func TestSessionStore_ConcurrentAdds(t *testing.T) {
	store := NewSessionStore()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			store.Add(&domain.ProductRecord{Name: fmt.Sprintf("p%d", i)})
		}(i)
	}
	wg.Wait()

	if store.Len() != n {
		t.Errorf("Len() = %d, want %d", store.Len(), n)
	}

	// Every ID in 1..n must exist exactly once
	for i := 1; i <= n; i++ {
		if _, ok := store.Get(fmt.Sprintf("product_%d", i)); !ok {
			t.Errorf("product_%d missing: ID assignment not atomic", i)
		}
	}
}
