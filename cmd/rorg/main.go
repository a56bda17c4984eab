package main

import (
	"context"

	"github.com/faizmokh/rorg/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
