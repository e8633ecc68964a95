// Command alpha browses the AlphaAgent token catalog from the terminal and
// can run as a long-lived watcher exposing health and metrics endpoints.
package main

import (
	"fmt"
	"os"
)

func main() {
	root, cleanup := newRootCmd()
	err := root.Execute()
	if cerr := cleanup(); cerr != nil {
		fmt.Fprintln(os.Stderr, "cleanup:", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
