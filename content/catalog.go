package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Summary is the metadata of one post plus the identifiers derived from its file.
type Summary struct {
	Metadata
	Slug     string
	Filename string
}

// Options controls which files Build considers and how strictly it checks
// the index sequence.
type Options struct {
	// Extensions lists accepted file extensions (default .md and .mdx).
	Extensions []string
	// RequireContiguous rejects catalogs whose indices skip a value or do
	// not start at FirstIndex.
	RequireContiguous bool
	FirstIndex        int
}

// DefaultExtensions are the post file types picked up when Options.Extensions is empty.
var DefaultExtensions = []string{".md", ".mdx"}

func (o Options) accepts(name string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Catalog is the ordered, immutable set of post summaries for one build.
type Catalog struct {
	fsys      fs.FS
	summaries []Summary
	bySlug    map[string]int
}

// Build reads every post at the root of fsys and returns the catalog sorted
// by index. Any invalid post fails the whole build; all problems found are
// reported together.
func Build(fsys fs.FS, opts Options) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content directory: %w", err)
	}

	var (
		summaries []Summary
		errs      error
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !opts.accepts(name) {
			continue
		}
		s, err := readSummary(fsys, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		summaries = append(summaries, s)
	}
	if errs != nil {
		return nil, errs
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Position() < summaries[j].Position()
	})

	if err := checkSequence(summaries, opts); err != nil {
		return nil, err
	}

	bySlug := make(map[string]int, len(summaries))
	for i, s := range summaries {
		bySlug[s.Slug] = i
	}
	return &Catalog{fsys: fsys, summaries: summaries, bySlug: bySlug}, nil
}

func readSummary(fsys fs.FS, name string) (Summary, error) {
	slug, err := SlugFromFilename(name)
	if err != nil {
		return Summary{}, err
	}
	source, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", name, err)
	}
	meta, _, err := ParseDocument(source)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := meta.Validate(); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", name, err)
	}
	return Summary{Metadata: meta, Slug: slug, Filename: name}, nil
}

// checkSequence expects summaries sorted by index.
func checkSequence(summaries []Summary, opts Options) error {
	var errs error
	slugs := make(map[string]string, len(summaries))
	for i, s := range summaries {
		if prev, ok := slugs[s.Slug]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w %q: %s and %s", ErrDuplicateSlug, s.Slug, prev, s.Filename))
		}
		slugs[s.Slug] = s.Filename

		if i == 0 {
			if opts.RequireContiguous && s.Position() != opts.FirstIndex {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s starts at %d, want %d", ErrIndexGap, s.Filename, s.Position(), opts.FirstIndex))
			}
			continue
		}
		prev := summaries[i-1]
		switch {
		case prev.Position() == s.Position():
			errs = multierr.Append(errs, fmt.Errorf("%w %d: %s and %s", ErrDuplicateIndex, s.Position(), prev.Filename, s.Filename))
		case opts.RequireContiguous && s.Position() != prev.Position()+1:
			errs = multierr.Append(errs, fmt.Errorf("%w: %s (%d) follows %s (%d)", ErrIndexGap, s.Filename, s.Position(), prev.Filename, prev.Position()))
		}
	}
	return errs
}

// Len returns the number of posts.
func (c *Catalog) Len() int {
	return len(c.summaries)
}

// Summaries returns the posts in reading order. The slice is a copy.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, len(c.summaries))
	copy(out, c.summaries)
	return out
}

// Lookup returns the summary with exactly the given slug.
func (c *Catalog) Lookup(slug string) (Summary, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Summary{}, false
	}
	return c.summaries[i], true
}

// First returns the first post in reading order.
func (c *Catalog) First() (Summary, bool) {
	if len(c.summaries) == 0 {
		return Summary{}, false
	}
	return c.summaries[0], true
}
