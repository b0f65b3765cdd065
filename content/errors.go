package content

import "errors"

var (
	// ErrNotFound is returned when no post has the requested slug.
	ErrNotFound = errors.New("post not found")

	ErrNoFrontMatter       = errors.New("metadata block missing")
	ErrUnclosedFrontMatter = errors.New("metadata block has no closing ---")
	ErrMissingTitle        = errors.New("metadata has no title")
	ErrMissingIndex        = errors.New("metadata has no index")
	ErrDuplicateIndex      = errors.New("duplicate index")
	ErrDuplicateSlug       = errors.New("duplicate slug")
	ErrIndexGap            = errors.New("index sequence is not contiguous")
	ErrInvalidFilename     = errors.New("filename does not yield a slug")

	// ErrStale means a file changed on disk after the catalog was built.
	ErrStale = errors.New("post changed since catalog was built")
)
