package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Record) error
	// List returns every record, most recent first.
	List(ctx context.Context) ([]*Record, error)
}

// ResponseArchive keeps raw completion responses for later inspection.
type ResponseArchive interface {
	Archive(ctx context.Context, key, body string) (string, error)
}
