package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"karobar/internal/core/entity"
	"karobar/internal/core/id"
)

type mockCatalog struct {
	entity.BaseEntity
	SKU   string `db:"sku" json:"sku"`
	Name  string `db:"name" json:"name"`
	Notes string `db:"-" json:"notes"`
}

type mockDocument struct {
	entity.BaseDocument
	Number string `db:"number" json:"number"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{"id", "version", "sku", "name"}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "notes")
}

func TestExtractDBColumns_EmbeddedDocument(t *testing.T) {
	cols := ExtractDBColumns[mockDocument]()

	for _, expected := range []string{"id", "version", "created_at", "updated_at", "created_by", "number"} {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseEntity: entity.BaseEntity{
			ID:      id.New(),
			Version: 5,
		},
		SKU:   "SOAP-R12",
		Name:  "Rose Soap 12pc",
		Notes: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "SOAP-R12", m["sku"])
	assert.Equal(t, "Rose Soap 12pc", m["name"])
	assert.NotContains(t, m, "notes")
}

func TestStructToMap_EmbeddedDocument(t *testing.T) {
	now := time.Now().UTC()
	doc := mockDocument{
		BaseDocument: entity.BaseDocument{
			BaseEntity: entity.BaseEntity{ID: id.New(), Version: 1},
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  "user-1",
		},
		Number: "SAL-2026-00001",
	}

	m := StructToMap(doc)

	assert.Equal(t, doc.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "user-1", m["created_by"])
	assert.Equal(t, "SAL-2026-00001", m["number"])
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{SKU: "X"}
	m := StructToMap(cat)
	assert.Equal(t, "X", m["sku"])
}
