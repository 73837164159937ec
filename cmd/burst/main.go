package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/burst-go/burst/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root := cli.NewRootCmd(ctx, opts)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("BURST_DEBUG"), "1") || strings.EqualFold(os.Getenv("BURST_DEBUG"), "true")
}
