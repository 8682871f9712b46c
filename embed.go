package quill

import "embed"

// EmbeddedAssets contains the client script shipped with quill: live search
// and the reading progress bar.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
