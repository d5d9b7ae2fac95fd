package ledger

import "context"

// Raw blob access for tests.

func (s *Store) PutBlob(ctx context.Context, key, value string) error {
	return s.put(ctx, key, value)
}

func (s *Store) GetBlob(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, key)
}
