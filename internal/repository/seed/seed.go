// Package seed embeds the initial state document written to an empty backend.
package seed

import _ "embed"

//go:embed seed.json
var document []byte

// Document returns a copy of the embedded seed JSON.
func Document() []byte {
	return append([]byte(nil), document...)
}
