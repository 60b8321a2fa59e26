// Package web carries the embedded templates and static assets so the binary
// ships self-contained.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var static embed.FS

// StaticFS returns the static asset tree rooted at its contents, ready to be
// served under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
