// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import "errors"

var (
	ErrSerialization = errors.New("proof: malformed serialization")
	ErrProverClosed  = errors.New("proof: prover closed")
)

// GenerationError reports a failed proof generation.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return "proof: generation failed: " + e.Reason
}

// InvalidProofError reports a structurally unusable proof. Honest negatives
// (wrong epoch, wrong binding) are reported as a false verification result,
// not as this error.
type InvalidProofError struct {
	Reason string
}

func (e *InvalidProofError) Error() string {
	return "proof: invalid proof: " + e.Reason
}

// InvalidPublicInputsError reports a public-value vector the integration
// layer cannot accept.
type InvalidPublicInputsError struct {
	Reason string
}

func (e *InvalidPublicInputsError) Error() string {
	return "proof: invalid public inputs: " + e.Reason
}

// BatchError reports a batch construction failure.
type BatchError struct {
	Reason string
}

func (e *BatchError) Error() string {
	return "proof: batch: " + e.Reason
}
