package main

import (
	"io"
	"os"
)

// stdout returns the current os.Stdout; tests swap it for a pipe.
func stdout() io.Writer {
	return os.Stdout
}
