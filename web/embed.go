package web

import "embed"

// Templates holds the HTML views rendered by app/utils/renderer.
//
//go:embed templates
var Templates embed.FS
