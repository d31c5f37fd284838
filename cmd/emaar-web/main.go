package main

import (
	"fmt"
	"os"

	"github.com/octabyte/emaar-web/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "emaar-web:", err)
		os.Exit(1)
	}
}
