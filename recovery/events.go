// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package recovery

import (
	"github.com/holiman/uint256"

	"github.com/veillabs/reclaim/common"
)

// EventListener observes the engine's protocol signals. Listeners are
// invoked synchronously after the corresponding state change committed, on
// the calling goroutine; they must not call back into the engine.
type EventListener interface {
	// Activated signals that a principal's configuration was set or
	// replaced.
	Activated(principal common.Address)

	// Approved signals that one approval was recorded or overwritten.
	Approved(approveHash common.Hash, signer common.Address, weight *uint256.Int)

	// Executed signals a completed execution and the dispatched call's own
	// success or failure. A false flag does not mean the recovery failed;
	// the recovery slot is consumed either way.
	Executed(principal common.Address, dispatchOK bool)
}

// nopListener is used when no listener is configured.
type nopListener struct{}

func (nopListener) Activated(common.Address)                          {}
func (nopListener) Approved(common.Hash, common.Address, *uint256.Int) {}
func (nopListener) Executed(common.Address, bool)                     {}
