package main

import (
	"fmt"
	"os"

	"github.com/james-coso/chatge.ie/cmd/chatge"
)

func main() {
	if err := chatge.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
