// Package assets embeds the SQL migrations shipped with the binary.
package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var FS embed.FS

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := FS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(b)})
	}
	return out, nil
}
