package vault

import "context"

// RecordStore is the minimal contract the engine needs from the host
// document store: enumerate records in a folder-like scope, read a
// record's frontmatter without parsing its body, and create/append/
// mutate records. The engine never embeds storage logic itself.
type RecordStore interface {
	// List enumerates record paths under scope, e.g. "Losses".
	List(ctx context.Context, scope string) ([]string, error)

	// ReadMeta returns the parsed frontmatter of the record at path.
	ReadMeta(ctx context.Context, path string) (map[string]any, error)

	// Create writes a new record with the given frontmatter and body.
	Create(ctx context.Context, path string, meta map[string]any, body string) error

	// Append adds text to the end of an existing record's body,
	// creating the record if it does not exist.
	Append(ctx context.Context, path string, text string) error

	// UpdateMeta applies fn to the record's frontmatter as a
	// read-modify-write. fn returning an error aborts the write.
	UpdateMeta(ctx context.Context, path string, fn func(meta map[string]any) error) error
}
