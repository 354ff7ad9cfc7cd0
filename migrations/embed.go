// Package migrations holds the schema applied by `atomizer migrate`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
