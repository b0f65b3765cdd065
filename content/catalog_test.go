package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugs(summaries []Summary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Slug
	}
	return out
}

func TestBuildOrdersByIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"10-composite-queries.mdx": post("Composite queries", 10),
		"02-requirements.mdx":      post("Requirements", 2),
		"01-intro.mdx":             post("Intro", 1),
		// The on-disk prefix disagrees with the declared index on purpose.
		"99-transactions.mdx": post("Transactions", 3),
	}

	cat := mustBuild(t, fsys, Options{})

	assert.Equal(t, len(fsys), cat.Len())
	assert.Equal(t, []string{"intro", "requirements", "transactions", "composite-queries"}, slugs(cat.Summaries()))

	all := cat.Summaries()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Position(), all[i].Position())
	}
}

func TestBuildSkipsForeignFiles(t *testing.T) {
	fsys := threePosts()
	fsys[".DS_Store"] = &fstest.MapFile{Data: []byte{0}}
	fsys["notes.txt"] = &fstest.MapFile{Data: []byte("scratch")}
	fsys["drafts/04-later.mdx"] = post("Later", 4)

	cat := mustBuild(t, fsys, Options{})
	assert.Equal(t, []string{"intro", "basics", "queries"}, slugs(cat.Summaries()))
}

func TestBuildExtensionOption(t *testing.T) {
	fsys := threePosts()
	fsys["04-extra.md"] = post("Extra", 4)

	cat := mustBuild(t, fsys, Options{Extensions: []string{".MDX"}})
	assert.Equal(t, 3, cat.Len())
}

func TestBuildEmptyDirectory(t *testing.T) {
	cat := mustBuild(t, fstest.MapFS{}, Options{})
	assert.Equal(t, 0, cat.Len())
	_, ok := cat.First()
	assert.False(t, ok)
}

func TestBuildMissingIndexIsFatal(t *testing.T) {
	fsys := threePosts()
	fsys["04-broken.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: Broken\n---\nbody\n")}

	cat, err := Build(fsys, Options{})
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrMissingIndex)
	assert.Contains(t, err.Error(), "04-broken.mdx")
}

func TestBuildMissingBlockIsFatal(t *testing.T) {
	fsys := threePosts()
	fsys["04-plain.md"] = &fstest.MapFile{Data: []byte("# no metadata\n")}

	_, err := Build(fsys, Options{})
	assert.ErrorIs(t, err, ErrNoFrontMatter)
}

func TestBuildReportsEveryBrokenFile(t *testing.T) {
	fsys := threePosts()
	fsys["04-a.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: A\n---\n")}
	fsys["05-b.mdx"] = &fstest.MapFile{Data: []byte("---\nindex: 5\n---\n")}

	_, err := Build(fsys, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingIndex)
	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.Contains(t, err.Error(), "04-a.mdx")
	assert.Contains(t, err.Error(), "05-b.mdx")
}

func TestBuildRejectsDuplicateIndex(t *testing.T) {
	fsys := threePosts()
	fsys["04-again.mdx"] = post("Again", 2)

	_, err := Build(fsys, Options{})
	assert.ErrorIs(t, err, ErrDuplicateIndex)
}

func TestBuildRejectsDuplicateSlug(t *testing.T) {
	fsys := threePosts()
	fsys["04-intro.md"] = post("Intro again", 4)

	_, err := Build(fsys, Options{})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestBuildGapPolicy(t *testing.T) {
	fsys := fstest.MapFS{
		"01-one.mdx":  post("One", 1),
		"02-two.mdx":  post("Two", 2),
		"04-four.mdx": post("Four", 4),
	}

	t.Run("tolerated by default", func(t *testing.T) {
		cat := mustBuild(t, fsys, Options{})

		prev, next, err := cat.Neighbors("four")
		require.NoError(t, err)
		require.NotNil(t, prev)
		assert.Equal(t, "two", prev.Slug)
		assert.Nil(t, next)

		_, next, err = cat.Neighbors("two")
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, "four", next.Slug)
	})

	t.Run("rejected when contiguous", func(t *testing.T) {
		_, err := Build(fsys, Options{RequireContiguous: true, FirstIndex: 1})
		assert.ErrorIs(t, err, ErrIndexGap)
	})

	t.Run("wrong first index", func(t *testing.T) {
		_, err := Build(threePosts(), Options{RequireContiguous: true, FirstIndex: 0})
		assert.ErrorIs(t, err, ErrIndexGap)

		_, err = Build(threePosts(), Options{RequireContiguous: true, FirstIndex: 1})
		assert.NoError(t, err)
	})
}

func TestLookupIsExact(t *testing.T) {
	fsys := fstest.MapFS{
		"02-defining-requirements-intro.mdx": post("Requirements", 2),
		"01-intro.mdx":                       post("Intro", 1),
	}
	cat := mustBuild(t, fsys, Options{})

	s, ok := cat.Lookup("intro")
	require.True(t, ok)
	assert.Equal(t, "01-intro.mdx", s.Filename)

	s, ok = cat.Lookup("defining-requirements-intro")
	require.True(t, ok)
	assert.Equal(t, "02-defining-requirements-intro.mdx", s.Filename)

	_, ok = cat.Lookup("requirements")
	assert.False(t, ok)
}

func TestSummariesReturnsCopy(t *testing.T) {
	cat := mustBuild(t, threePosts(), Options{})
	all := cat.Summaries()
	all[0].Slug = "mutated"

	first, ok := cat.First()
	require.True(t, ok)
	assert.Equal(t, "intro", first.Slug)
}
