// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Startini.
//
// Usage:
//
//	go run . [flags] <command>
//	./startini update start.ini jetty.http.port=9090
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/toeirei/startini/internal/logging"
	"github.com/toeirei/startini/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("startini: %v", err)
		os.Exit(1)
	}
}
