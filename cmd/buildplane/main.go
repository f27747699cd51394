package main

import (
	"os"

	"github.com/lumajs/buildplane/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
