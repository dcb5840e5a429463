package evidence

import "context"

// Upload is a raw file handed in by the user.
type Upload struct {
	Name string
	Data []byte
}

// Extractor turns a raw file into plain text. Implementations never fail:
// unreadable files yield an inline error string as their text.
type Extractor interface {
	Extract(name string, data []byte) string
}

// FileShareFetcher fetches supported documents under a folder of a file
// share and returns their extracted text keyed by file name.
type FileShareFetcher interface {
	FetchFolder(ctx context.Context, folder string) (map[string]string, error)
}

// CodeRepositoryFetcher reads literal file paths from a repository and
// returns one concatenated, labelled text. Missing files produce an inline
// "not found" marker instead of failing the call.
type CodeRepositoryFetcher interface {
	FetchFiles(ctx context.Context, repository string, paths []string) (string, error)
}
