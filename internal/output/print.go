package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrintJSON encodes and prints the given value as indented JSON to stdout.
func PrintJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JSON output: %v\n", err)
		os.Exit(1)
	}
}
