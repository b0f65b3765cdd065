package content

import (
	"fmt"
	"io/fs"
)

// Page is one post resolved for rendering: its metadata, its body and the
// posts immediately before and after it in reading order.
type Page struct {
	Summary
	Body []byte
	Prev *Summary
	Next *Summary
}

// Neighbors returns the posts adjacent to slug in the sorted catalog. Either
// may be nil at the ends of the sequence. Adjacency is positional, so gaps in
// the index values do not hide later posts.
func (c *Catalog) Neighbors(slug string) (prev, next *Summary, err error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	if i > 0 {
		p := c.summaries[i-1]
		prev = &p
	}
	if i+1 < len(c.summaries) {
		n := c.summaries[i+1]
		next = &n
	}
	return prev, next, nil
}

// Resolve loads the body of the post with the given slug and links it to its
// neighbors. Unknown slugs yield an error wrapping ErrNotFound.
func (c *Catalog) Resolve(slug string) (Page, error) {
	summary, ok := c.Lookup(slug)
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}

	source, err := fs.ReadFile(c.fsys, summary.Filename)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", summary.Filename, err)
	}
	meta, body, err := ParseDocument(source)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", summary.Filename, err)
	}
	if err := meta.Validate(); err != nil {
		return Page{}, fmt.Errorf("%s: %w", summary.Filename, err)
	}
	if meta.Position() != summary.Position() {
		return Page{}, fmt.Errorf("%w: %s index %d, catalog has %d", ErrStale, summary.Filename, meta.Position(), summary.Position())
	}

	prev, next, err := c.Neighbors(slug)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Summary: Summary{Metadata: meta, Slug: summary.Slug, Filename: summary.Filename},
		Body:    body,
		Prev:    prev,
		Next:    next,
	}, nil
}
