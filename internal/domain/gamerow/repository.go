package gamerow

import "context"

// Repository is the append-only ledger plus the imported URL record.
type Repository interface {
	ListRows(ctx context.Context) ([]GameRow, error)
	ListImportedURLs(ctx context.Context) ([]string, error)
	// AppendMap stores the rows of one map and records its URL in the same commit.
	AppendMap(ctx context.Context, url string, rows []GameRow) error
}
