// Package static holds the built-in web front-end served under /static.
package static

import "embed"

// Files contains index.html, app.js and styles.css.
//
//go:embed index.html app.js styles.css
var Files embed.FS
