package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the UPSERT ... RETURNING sequence behavior:
// one counter per key, incremented atomically.
type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string]int64)
	}
	key, _ := args[0].(string)
	m.values[key]++
	return &mockRow{val: m.values[key]}
}

func TestNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.NextNumber(ctx, "SAL", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SAL-2026-00001" {
		t.Errorf("expected SAL-2026-00001, got %s", num)
	}

	num, err = svc.NextNumber(ctx, "SAL", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SAL-2026-00002" {
		t.Errorf("expected SAL-2026-00002, got %s", num)
	}
}

func TestNextNumber_SeparateSequencePerYear(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	y2026 := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	y2027 := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.NextNumber(ctx, "SAL", y2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SAL-2026-00001" {
		t.Errorf("expected SAL-2026-00001, got %s", num)
	}

	// New year starts from 1 again
	num, err = svc.NextNumber(ctx, "SAL", y2027)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SAL-2027-00001" {
		t.Errorf("expected SAL-2027-00001, got %s", num)
	}
}

func TestNextNumber_SeparateSequencePerPrefix(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.NextNumber(ctx, "SAL", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.NextNumber(ctx, "PAY", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PAY-2026-00001" {
		t.Errorf("expected PAY-2026-00001, got %s", num)
	}
}

func TestNextNumber_ConcurrentAllocationsAreUnique(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	const n = 50
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.NextNumber(ctx, "SAL", at)
			if err != nil {
				results <- fmt.Sprintf("error: %v", err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, n)
	for num := range results {
		if seen[num] {
			t.Fatalf("duplicate number allocated: %s", num)
		}
		seen[num] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d unique numbers, got %d", n, len(seen))
	}
}
