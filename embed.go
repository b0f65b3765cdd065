package postseries

import "embed"

// EmbeddedAssets contains the default stylesheet served under <base>/public/
// and copied into every export.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
