// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli holds the cobra commands shared by the pbf binary: the root
// command other subcommands register themselves against, and small
// file/progress-bar helpers every subcommand reuses.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level command; subcommands register themselves onto it
// from their own package's init.
var RootCmd = &cobra.Command{
	Use:   "pbf",
	Short: "Inspect OpenStreetMap PBF files",
}

// Execute runs RootCmd, logging and exiting non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		slog.Error("pbf command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Fatal logs err and exits, the slog-backed replacement for the teacher's
// ad hoc log.Fatal calls scattered through its own cmd/pbf commands.
func Fatal(err error) {
	slog.Error("pbf", "error", err)
	os.Exit(1)
}
