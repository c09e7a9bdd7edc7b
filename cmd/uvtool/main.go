// Command uvtool builds remesh and UV networks for FBX and OBJ assets.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
