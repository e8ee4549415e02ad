package main

import (
	"github.com/rsoares/deckvault/internal/config"
	"github.com/rsoares/deckvault/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
