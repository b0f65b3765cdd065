package content

import (
	"fmt"
	"testing"
	"testing/fstest"
)

func post(title string, index int) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(fmt.Sprintf("---\ntitle: %s\nsubtitle: About %s\nindex: %d\n---\n# %s\n\nBody of %s.\n", title, title, index, title, title))}
}

func threePosts() fstest.MapFS {
	return fstest.MapFS{
		"03-queries.mdx": post("Queries", 3),
		"01-intro.mdx":   post("Intro", 1),
		"02-basics.mdx":  post("Basics", 2),
	}
}

func mustBuild(t *testing.T, fsys fstest.MapFS, opts Options) *Catalog {
	t.Helper()
	cat, err := Build(fsys, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cat
}
