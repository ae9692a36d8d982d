package references

import (
	"context"
	"fmt"
	"strings"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

// KeyError records why one reference document was skipped.
type KeyError struct {
	Key string
	Err error
}

func (e KeyError) Error() string {
	return fmt.Sprintf("reference %q: %v", e.Key, e.Err)
}

func (e KeyError) Unwrap() error {
	return e.Err
}

// Corpus is the concatenated text of every reference document that could be
// read, plus the keys that could not.
type Corpus struct {
	Text     string
	Loaded   []string
	Failures []KeyError
}

// Fetcher downloads a fixed list of reference documents from an object store.
type Fetcher struct {
	Store object.ObjectStore
	Keys  []string
}

// Fetch reads each key in order and appends its extracted text followed by a
// newline. A key that cannot be fetched or parsed is logged, recorded in
// Failures and skipped; the remaining keys still run.
func (f *Fetcher) Fetch(ctx context.Context) Corpus {
	var (
		corpus Corpus
		b      strings.Builder
	)
	for _, key := range f.Keys {
		if err := ctx.Err(); err != nil {
			corpus.Failures = append(corpus.Failures, KeyError{Key: key, Err: err})
			continue
		}
		text, err := extract.ExtractText(ctx, f.Store, key)
		if err != nil {
			telemetry.Warn("references.fetch_failed", map[string]any{
				"key":   key,
				"error": err,
			})
			corpus.Failures = append(corpus.Failures, KeyError{Key: key, Err: err})
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
		corpus.Loaded = append(corpus.Loaded, key)
	}
	corpus.Text = b.String()
	return corpus
}
