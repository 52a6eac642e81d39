package docstore

import "context"

// A collection is a JSON array stored as a single value under one key.
// Mutations read the whole array, change it in memory and write it back.
// Within one Store they are serialized per key, so concurrent appends do
// not lose records; writers in other processes can still race.

// ListCollection returns the records stored under key in insertion order.
// An absent key or a stored JSON null yields an empty, non-nil slice.
func ListCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	var records []T
	if _, err := s.Get(ctx, key, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// AppendToCollection adds record to the end of the collection under key,
// creating the collection if needed. Duplicates are kept.
func AppendToCollection[T any](ctx context.Context, s *Store, key string, record T) error {
	unlock := s.lock(key)
	defer unlock()

	records, err := ListCollection[T](ctx, s, key)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, append(records, record))
}

// UpsertCollection replaces the first element for which same(existing, record)
// is true, or appends record when nothing matches. It reports whether an
// element was replaced.
func UpsertCollection[T any](ctx context.Context, s *Store, key string, record T, same func(existing, candidate T) bool) (bool, error) {
	unlock := s.lock(key)
	defer unlock()

	records, err := ListCollection[T](ctx, s, key)
	if err != nil {
		return false, err
	}

	replaced := false
	for i := range records {
		if same(records[i], record) {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	if err := s.Put(ctx, key, records); err != nil {
		return false, err
	}
	return replaced, nil
}

// ClearCollection deletes the collection under key.
func ClearCollection(ctx context.Context, s *Store, key string) error {
	unlock := s.lock(key)
	defer unlock()

	return s.Delete(ctx, key)
}
