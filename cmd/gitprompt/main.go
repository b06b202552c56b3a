package main

import (
	"os"

	"github.com/schmitthub/gitprompt/internal/gitprompt"
)

func main() {
	os.Exit(gitprompt.Main())
}
