package driven

import "context"

// TextSource reads normalised text files (UTF-8, LF-terminated) stored at a
// document's path_text. The core reads and never writes them.
type TextSource interface {
	// ReadNormalized returns the file contents. A missing or unreadable
	// file wraps domain.ErrCorpusRead so callers can skip corpus entries
	// without aborting a check.
	ReadNormalized(ctx context.Context, path string) (string, error)
}
