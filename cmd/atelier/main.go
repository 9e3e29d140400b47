package main

import (
	"github.com/atelierhq/atelier/internal/cli/cmd"
)

func main() {
	enableCrashForensics()
	cmd.Execute()
}
