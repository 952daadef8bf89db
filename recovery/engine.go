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
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/veillabs/reclaim/backend/kvstore"
	"github.com/veillabs/reclaim/common"
	"github.com/veillabs/reclaim/merkle"
)

// Stores groups the four keyed tables the engine operates on. Any
// combination of backends satisfying kvstore.Store may be used, as long as
// all four are reserved for this engine exclusively.
type Stores struct {
	// UsedCommitments is the domain-wide, monotonically growing set of
	// burned commitment hashes.
	UsedCommitments kvstore.Store[common.Hash, bool]

	// Configurations maps principals to their active recovery set.
	Configurations kvstore.Store[common.Address, RecoverySet]

	// Approvals maps leaf keys to recorded, unconsumed approvals.
	Approvals kvstore.Store[common.Hash, Approval]

	// Nonces counts completed executions per principal.
	Nonces kvstore.Store[common.Address, uint64]
}

// Dependencies groups the engine's external collaborators.
type Dependencies struct {
	Directory  IdentityDirectory
	Contracts  ContractSignatureValidator
	Dispatcher Dispatcher
	Clock      Clock // defaults to WallClock when nil
}

// Engine is the authorization engine of the recovery protocol. It owns the
// four protocol tables and serializes all public operations behind one
// mutex, so each operation is single-writer and runs to completion or
// aborts without surviving partial mutation.
type Engine struct {
	mu       sync.Mutex
	stores   Stores
	verifier *SignatureVerifier
	deps     Dependencies
	params   DomainParams
	listener EventListener
	log      zerolog.Logger
}

// Option configures optional engine behavior.
type Option func(*Engine)

// WithListener installs a listener for the engine's protocol signals.
func WithListener(listener EventListener) Option {
	return func(e *Engine) {
		e.listener = listener
	}
}

// WithLogger installs a structured logger. Without it the engine is silent.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine constructs an engine over the given stores and collaborators.
func NewEngine(stores Stores, deps Dependencies, params DomainParams, opts ...Option) *Engine {
	if deps.Clock == nil {
		deps.Clock = WallClock{}
	}
	engine := &Engine{
		stores:   stores,
		verifier: NewSignatureVerifier(params, deps.Directory, deps.Contracts),
		deps:     deps,
		params:   params,
		listener: nopListener{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Setup activates or replaces the principal's recovery configuration.
//
// The offered commitment hash is burned the moment it passes the reuse
// check: it stays in the used set even when the reconfiguration gate below
// rejects the call, and can never be offered again by any principal.
func (e *Engine) Setup(principal common.Address, commitmentHash common.Hash, setupDelay uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, used, err := e.stores.UsedCommitments.Get(commitmentHash)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: %s", ErrCommitmentReused, commitmentHash)
	}
	if err := e.stores.UsedCommitments.Set(commitmentHash, true); err != nil {
		return err
	}

	now := e.deps.Clock.Now()
	current, configured, err := e.stores.Configurations.Get(principal)
	if err != nil {
		return err
	}
	if configured && now < current.SetupTime+current.SetupDelay {
		return fmt.Errorf("%w: %d seconds remaining", ErrDelayNotMet, current.SetupTime+current.SetupDelay-now)
	}

	set := RecoverySet{
		CommitmentHash: commitmentHash,
		SetupDelay:     setupDelay,
		SetupTime:      now,
	}
	if err := e.stores.Configurations.Set(principal, set); err != nil {
		return err
	}

	e.log.Info().
		Stringer("principal", principal).
		Stringer("commitment", commitmentHash).
		Uint64("delay", setupDelay).
		Msg("recovery configuration activated")
	e.listener.Activated(principal)
	return nil
}

// Approve verifies and records one approval. Recording the same leaf key
// again overwrites the previous entry; approvals never accumulate in place.
func (e *Engine) Approve(
	signer common.Address,
	approveHash, peerSeed common.Hash,
	weight *uint256.Int,
	anchor common.Hash,
	sig []byte,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.verifier.Verify(signer, approveHash, peerSeed, weight, anchor, sig); err != nil {
		return err
	}
	if err := e.record(approveHash, peerSeed, weight, anchor); err != nil {
		return err
	}
	e.listener.Approved(approveHash, signer, weight)
	return nil
}

// ApprovePreSigned verifies and records a batch of approvals sharing one
// signature blob. Every entry's signing hash depends on that entry's own
// weight and anchor, so only entries matching what the signature actually
// covers can verify; a single mismatching entry fails the whole call and
// nothing is recorded.
func (e *Engine) ApprovePreSigned(
	approveHash, peerSeed common.Hash,
	entries []PreSignedApproval,
	sig []byte,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, entry := range entries {
		if err := e.verifier.Verify(entry.Signer, approveHash, peerSeed, entry.Weight, entry.Anchor, sig); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	for _, entry := range entries {
		if err := e.record(approveHash, peerSeed, entry.Weight, entry.Anchor); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		e.listener.Approved(approveHash, entry.Signer, entry.Weight)
	}
	return nil
}

// ApprovePreSignedArrays is the flat-array form of ApprovePreSigned. The
// three arrays must have equal length.
func (e *Engine) ApprovePreSignedArrays(
	approveHash, peerSeed common.Hash,
	weights []*uint256.Int,
	anchors []common.Hash,
	signers []common.Address,
	sig []byte,
) error {
	if len(signers) != len(weights) || len(signers) != len(anchors) {
		return fmt.Errorf("%w: %d signers, %d weights, %d anchors", ErrLengthMismatch, len(signers), len(weights), len(anchors))
	}
	entries := make([]PreSignedApproval, len(signers))
	for i := range signers {
		entries[i] = PreSignedApproval{
			Signer: signers[i],
			Weight: weights[i],
			Anchor: anchors[i],
		}
	}
	return e.ApprovePreSigned(approveHash, peerSeed, entries, sig)
}

// record writes one verified approval into the ledger.
func (e *Engine) record(approveHash, peerSeed common.Hash, weight *uint256.Int, anchor common.Hash) error {
	key := LeafKey(peerSeed, weight, anchor)
	approval := Approval{ActionCommitment: approveHash}
	approval.Weight.Set(weight)
	if err := e.stores.Approvals.Set(key, approval); err != nil {
		return err
	}
	e.log.Debug().
		Stringer("leafKey", key).
		Stringer("action", approveHash).
		Msg("approval recorded")
	return nil
}

// Execute reveals the secret seed and Merkle root, consumes the listed
// approvals, verifies their membership in the committed peer set, and
// dispatches the authorized call.
//
// The leaf keys are walked strictly in the given order until the
// accumulated scaled weight reaches the threshold; the engine never
// reorders them. Approvals are consumed tentatively and, together with the
// nonce increment and the configuration reset, committed only after the
// multiproof verified, so a failed call leaves all stores untouched.
//
// The returned flag is the dispatched call's own success. A false flag is
// not an engine failure: the recovery slot is consumed once authorization
// validated, whatever the authorized action then does.
func (e *Engine) Execute(
	principal common.Address,
	secretSeed, merkleRoot common.Hash,
	weightMultiplier *uint256.Int,
	target common.Address,
	payload []byte,
	leafKeys []common.Hash,
	siblings []common.Hash,
	indices []uint16,
) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	config, configured, err := e.stores.Configurations.Get(principal)
	if err != nil {
		return false, err
	}
	if !configured {
		return false, fmt.Errorf("%w: %s", ErrRecoveryNotSet, principal)
	}

	peerSeed := DeriveSeed(secretSeed)
	if Commitment(peerSeed, merkleRoot, weightMultiplier) != config.CommitmentHash {
		return false, ErrInvalidCommitment
	}

	action := ActionCommitment(peerSeed, target, payload)

	journal := kvstore.NewJournal(e.stores.Approvals)
	total := uint256.NewInt(0)
	consumed := 0
	for _, key := range leafKeys {
		approval, exists, err := journal.Get(key)
		if err != nil {
			return false, err
		}
		if !exists || approval.ActionCommitment != action {
			return false, fmt.Errorf("%w: leaf key %s", ErrInvalidApproval, key)
		}
		scaled, overflow := new(uint256.Int).MulOverflow(&approval.Weight, weightMultiplier)
		if overflow {
			return false, fmt.Errorf("%w: weight overflow at leaf key %s", ErrInvalidApproval, key)
		}
		if _, overflow = total.AddOverflow(total, scaled); overflow {
			return false, fmt.Errorf("%w: weight overflow at leaf key %s", ErrInvalidApproval, key)
		}
		journal.Delete(key)
		consumed++
		if total.CmpUint64(ExecutionThreshold) >= 0 {
			break
		}
	}
	if total.CmpUint64(ExecutionThreshold) < 0 {
		return false, fmt.Errorf("%w: accumulated %s of %d", ErrInsufficientWeight, total, ExecutionThreshold)
	}

	if !merkle.VerifyMultiProof(merkleRoot, leafKeys[:consumed], siblings, indices) {
		return false, ErrInvalidMerkleProof
	}

	// Authorization complete; commit all state changes, then dispatch.
	if err := journal.Commit(); err != nil {
		return false, err
	}
	nonce, _, err := e.stores.Nonces.Get(principal)
	if err != nil {
		return false, err
	}
	if err := e.stores.Nonces.Set(principal, nonce+1); err != nil {
		return false, err
	}
	if err := e.stores.Configurations.Delete(principal); err != nil {
		return false, err
	}

	ok := e.deps.Dispatcher.Dispatch(target, payload)

	e.log.Info().
		Stringer("principal", principal).
		Stringer("target", target).
		Int("approvals", consumed).
		Bool("dispatchOK", ok).
		Msg("recovery executed")
	e.listener.Executed(principal, ok)
	return ok, nil
}

// IsCommitmentUsed reports whether the commitment hash was ever offered.
func (e *Engine) IsCommitmentUsed(commitmentHash common.Hash) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, used, err := e.stores.UsedCommitments.Get(commitmentHash)
	return used, err
}

// Nonce returns the principal's execution counter.
func (e *Engine) Nonce(principal common.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	nonce, _, err := e.stores.Nonces.Get(principal)
	return nonce, err
}

// Configuration returns the principal's active recovery set, if any.
func (e *Engine) Configuration(principal common.Address) (RecoverySet, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stores.Configurations.Get(principal)
}

// ApprovalAt returns the approval recorded under the leaf key, if any.
func (e *Engine) ApprovalAt(leafKey common.Hash) (Approval, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stores.Approvals.Get(leafKey)
}
