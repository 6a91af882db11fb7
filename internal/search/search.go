package search

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Option is one autocomplete suggestion.
type Option struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// Searcher is a substring search over an entity's lookup fields.
type Searcher interface {
	Search(ctx context.Context, q string, limit int) ([]Option, error)
}

// Creator is the optional capability to create a record from free text,
// used by the service autocomplete's "create new" action.
type Creator interface {
	CreateFromText(ctx context.Context, text string) (Option, error)
}

// likeQuery applies a case-insensitive substring filter across fields.
func likeQuery(db *gorm.DB, fields []string, q string) *gorm.DB {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return db
	}

	like := "%" + q + "%"
	clause := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		clause[i] = "LOWER(" + f + ") LIKE ?"
		args[i] = like
	}

	return db.Where(strings.Join(clause, " OR "), args...)
}
