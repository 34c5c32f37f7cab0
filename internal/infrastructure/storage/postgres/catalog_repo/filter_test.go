package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name", "phone", "total_due"}, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to name", orderBy: "", want: "name ASC"},
		{name: "plain field", orderBy: "total_due", want: "total_due ASC"},
		{name: "descending prefix", orderBy: "-total_due", want: "total_due DESC"},
		{name: "explicit ascending prefix", orderBy: "+name", want: "name ASC"},
		{name: "unknown column rejected", orderBy: "password", wantErr: true},
		{name: "injection rejected", orderBy: "name; DROP TABLE users", wantErr: true},
		{name: "bare minus rejected", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBaseSelect_SQL(t *testing.T) {
	repo := newTestRepo()

	q := repo.baseSelect().Where(squirrel.Eq{"id": "abc"})
	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, phone, total_due FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestCustomerListFilters_SQL(t *testing.T) {
	repo := newTestRepo()

	// The shape the customer list builds: search across name/phone plus
	// a positive-balance restriction.
	q := repo.baseSelect().
		Where(squirrel.Or{
			squirrel.ILike{"name": "%ali%"},
			squirrel.ILike{"phone": "%ali%"},
		}).
		Where(squirrel.Gt{"total_due": 0})

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, phone, total_due FROM test_table WHERE (name ILIKE $1 OR phone ILIKE $2) AND total_due > $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}
