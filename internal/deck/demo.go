package deck

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in deck.
func Demo() *File {
	file, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in deck: %v", err))
	}
	return file
}
