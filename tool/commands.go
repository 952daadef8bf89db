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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/veillabs/reclaim/common"
	"github.com/veillabs/reclaim/merkle"
	"github.com/veillabs/reclaim/recovery"
)

var (
	seedFlag = cli.StringFlag{
		Name:     "seed",
		Usage:    "peer seed as hex (already derived, not the secret)",
		Required: true,
	}
	secretFlag = cli.StringFlag{
		Name:     "secret",
		Usage:    "secret seed as hex",
		Required: true,
	}
	weightFlag = cli.StringFlag{
		Name:     "weight",
		Usage:    "approval weight as a decimal number",
		Required: true,
	}
	anchorFlag = cli.StringFlag{
		Name:  "anchor",
		Usage: "identity anchor as hex, omit for an unanchored approval",
	}
	rootFlag = cli.StringFlag{
		Name:     "root",
		Usage:    "merkle root as hex",
		Required: true,
	}
	multiplierFlag = cli.StringFlag{
		Name:  "multiplier",
		Usage: "weight multiplier as a decimal number",
		Value: "1",
	}
	leavesFlag = cli.StringFlag{
		Name:     "leaves",
		Usage:    "file with one hex leaf key per line",
		Required: true,
	}
	positionsFlag = cli.IntSliceFlag{
		Name:     "position",
		Usage:    "tree position of a proved leaf, repeat per leaf in call order",
		Required: true,
	}
)

// LeafKeyCmd derives the ledger slot of one approval.
var LeafKeyCmd = cli.Command{
	Name:  "leaf-key",
	Usage: "derive an approval's leaf key from seed, weight, and anchor",
	Flags: []cli.Flag{&seedFlag, &weightFlag, &anchorFlag},
	Action: func(ctx *cli.Context) error {
		seed, err := common.HashFromString(ctx.String(seedFlag.Name))
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		weight, err := parseWeight(ctx.String(weightFlag.Name))
		if err != nil {
			return err
		}
		anchor := common.Hash{}
		if s := ctx.String(anchorFlag.Name); s != "" {
			if anchor, err = common.HashFromString(s); err != nil {
				return fmt.Errorf("invalid anchor: %w", err)
			}
		}
		fmt.Println(recovery.LeafKey(seed, weight, anchor))
		return nil
	},
}

// CommitmentCmd derives the setup-time commitment hash.
var CommitmentCmd = cli.Command{
	Name:  "commitment",
	Usage: "derive the commitment hash from secret seed, merkle root, and multiplier",
	Flags: []cli.Flag{&secretFlag, &rootFlag, &multiplierFlag},
	Action: func(ctx *cli.Context) error {
		secret, err := common.HashFromString(ctx.String(secretFlag.Name))
		if err != nil {
			return fmt.Errorf("invalid secret: %w", err)
		}
		root, err := common.HashFromString(ctx.String(rootFlag.Name))
		if err != nil {
			return fmt.Errorf("invalid root: %w", err)
		}
		multiplier, err := parseWeight(ctx.String(multiplierFlag.Name))
		if err != nil {
			return err
		}
		seed := recovery.DeriveSeed(secret)
		fmt.Println(recovery.Commitment(seed, root, multiplier))
		return nil
	},
}

// RootCmd builds the Merkle root over a leaf-key list.
var RootCmd = cli.Command{
	Name:  "root",
	Usage: "compute the merkle root over a leaf-key file",
	Flags: []cli.Flag{&leavesFlag},
	Action: func(ctx *cli.Context) error {
		leaves, err := readLeaves(ctx.String(leavesFlag.Name))
		if err != nil {
			return err
		}
		tree := merkle.BuildTree(leaves)
		log.Info().Int("leaves", len(leaves)).Uint("depth", tree.Depth()).Msg("tree built")
		fmt.Println(tree.Root())
		return nil
	},
}

// ProveCmd emits the multiproof for chosen leaf positions.
var ProveCmd = cli.Command{
	Name:  "prove",
	Usage: "emit the siblings and pairing sequence proving the chosen leaves",
	Flags: []cli.Flag{&leavesFlag, &positionsFlag},
	Action: func(ctx *cli.Context) error {
		leaves, err := readLeaves(ctx.String(leavesFlag.Name))
		if err != nil {
			return err
		}
		tree := merkle.BuildTree(leaves)
		siblings, indices, err := tree.BuildMultiProof(ctx.IntSlice(positionsFlag.Name))
		if err != nil {
			return err
		}
		fmt.Printf("root: %s\n", tree.Root())
		for _, sibling := range siblings {
			fmt.Printf("sibling: %s\n", sibling)
		}
		fmt.Printf("indices:")
		for _, index := range indices {
			fmt.Printf(" %d", index)
		}
		fmt.Println()
		return nil
	},
}

func parseWeight(s string) (*uint256.Int, error) {
	weight, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal number %q: %w", s, err)
	}
	return weight, nil
}

func readLeaves(path string) ([]common.Hash, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var leaves []common.Hash
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		leaf, err := common.HashFromString(line)
		if err != nil {
			return nil, fmt.Errorf("invalid leaf %q: %w", line, err)
		}
		leaves = append(leaves, leaf)
	}
	return leaves, scanner.Err()
}
