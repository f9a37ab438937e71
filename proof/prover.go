// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	log "github.com/luxfi/log"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/mtd"
	"github.com/luxfi/zkmtd/stark"
)

// IntegratedProver produces proofs bound to the current epoch's parameters.
// Not safe for concurrent use; run one prover per goroutine.
type IntegratedProver struct {
	manager *mtd.Manager
	backend stark.Backend
	log     log.Logger
}

// NewIntegratedProver constructs a prover pinned to (seed, epoch) with the
// reference backend.
func NewIntegratedProver(seed []byte, e epoch.Epoch) (*IntegratedProver, error) {
	manager, err := mtd.NewManager(seed, e)
	if err != nil {
		return nil, err
	}
	return &IntegratedProver{
		manager: manager,
		backend: stark.NewReferenceBackend(),
		log:     log.NewTestLogger(log.InfoLevel),
	}, nil
}

// SetBackend swaps the STARK backend, e.g. for an accelerated prover.
func (p *IntegratedProver) SetBackend(b stark.Backend) {
	p.backend = b
}

// SetLogger replaces the prover's logger.
func (p *IntegratedProver) SetLogger(l log.Logger) {
	p.log = l
}

// CurrentEpoch returns the epoch proofs are currently bound to.
func (p *IntegratedProver) CurrentEpoch() epoch.Epoch {
	return p.manager.CurrentEpoch()
}

// Manager exposes the prover's parameter manager.
func (p *IntegratedProver) Manager() *mtd.Manager {
	return p.manager
}

// AdvanceEpoch rotates the prover to the next epoch.
func (p *IntegratedProver) AdvanceEpoch() error {
	return p.manager.Advance()
}

// Verifier derives an independent verifier over the same seed at the same
// epoch. The seed never leaves the managers.
func (p *IntegratedProver) Verifier() (*IntegratedVerifier, error) {
	sibling, err := p.manager.Sibling()
	if err != nil {
		return nil, err
	}
	return &IntegratedVerifier{
		manager: sibling,
		backend: p.backend,
		log:     p.log,
	}, nil
}

// Close zeroizes the prover's seed.
func (p *IntegratedProver) Close() {
	p.manager.Close()
}

// ProveFibonacci proves a Fibonacci trace of numRows rows (power of two,
// >= 4). Public values: [F(0), F(1), F(numRows-2), F(numRows-1)].
func (p *IntegratedProver) ProveFibonacci(numRows int, pvSalt [commitment.SaltSize]byte) (*IntegratedProof, error) {
	pv, err := stark.FibonacciPublicValues(numRows)
	if err != nil {
		return nil, err
	}
	w, err := stark.FibonacciWitness(numRows)
	if err != nil {
		return nil, err
	}
	return p.prove(stark.AirFibonacci, w, pv, pvSalt)
}

// ProveSum proves the element-wise sum of a and b. Public values: [Σ(a+b)].
func (p *IntegratedProver) ProveSum(a, b []field.Element, pvSalt [commitment.SaltSize]byte) (*IntegratedProof, error) {
	w, err := stark.ArithmeticWitness(a, b)
	if err != nil {
		return nil, err
	}
	var total field.Element
	for i := range a {
		total = field.Add(total, field.Add(a[i], b[i]))
	}
	return p.prove(stark.AirSum, w, []field.Element{total}, pvSalt)
}

// ProveMultiplication proves the element-wise product of a and b. Public
// values: [Σ(a·b)].
func (p *IntegratedProver) ProveMultiplication(a, b []field.Element, pvSalt [commitment.SaltSize]byte) (*IntegratedProof, error) {
	w, err := stark.ArithmeticWitness(a, b)
	if err != nil {
		return nil, err
	}
	var total field.Element
	for i := range a {
		total = field.Add(total, field.Mul(a[i], b[i]))
	}
	return p.prove(stark.AirMultiplication, w, []field.Element{total}, pvSalt)
}

// ProveRange proves value >= threshold with the difference in 32 bits,
// revealing only the threshold. The prover refuses to forge: a value below
// the threshold fails with an invalid-witness error.
func (p *IntegratedProver) ProveRange(value, threshold uint64, pvSalt [commitment.SaltSize]byte) (*IntegratedProof, error) {
	w, err := stark.RangeWitness(value, threshold)
	if err != nil {
		return nil, err
	}
	return p.prove(stark.AirRange, w, []field.Element{field.FromUint64(threshold)}, pvSalt)
}

// prove runs the backend, commits the public values under the salt and
// binds everything to the current params. All intermediates are computed
// into locals before assembly, so an abandoned call leaves no shared state
// behind. The witness is zeroized before returning.
func (p *IntegratedProver) prove(
	air stark.AirType,
	w *stark.Witness,
	pv []field.Element,
	pvSalt [commitment.SaltSize]byte,
) (*IntegratedProof, error) {
	defer w.Close()

	starkBytes, err := p.backend.Prove(air, w, pv)
	if err != nil {
		return nil, err
	}
	e := p.manager.CurrentEpoch()
	params := p.manager.CurrentParams()
	committed := commitment.Commit(pv, pvSalt)
	binding := BindingHash(pv, committed, e, params)

	p.log.Debug("generated integrated proof", "air", air.String(), "epoch", e.Uint64())
	return &IntegratedProof{
		AirType:      air,
		StarkProof:   starkBytes,
		PublicValues: pv,
		Epoch:        e,
		Params:       params,
		BindingHash:  binding,
		Committed:    committed,
		pvSalt:       pvSalt,
		pvSaltSet:    true,
	}, nil
}
