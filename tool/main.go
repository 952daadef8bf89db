// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./tool <command> <flags>

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	app := &cli.App{
		Name:      "tool",
		Usage:     "reclaim recovery toolbox",
		Copyright: "(c) 2025 Veil Labs Ltd",
		Commands: []*cli.Command{
			&LeafKeyCmd,
			&CommitmentCmd,
			&RootCmd,
			&ProveCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
