// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

// Domain-separation tags. Each tag belongs to exactly one call-site in the
// code base; a new hashed structure gets a new tag, never a reused one.
const (
	// Parameter rotation.
	DomainMTDParameters = "ZKMTD::MTD::Parameters"
	DomainMTDDomainSep  = "MTD_DOMAIN_SEP"
	DomainMTDSalt       = "MTD_SALT"
	DomainMTDFRISeed    = "MTD_FRI_SEED"

	// Public-value commitments and binding.
	DomainPVCommit = "ZKMTD::PV::Commit"
	DomainPVSalt   = "ZKMTD::PV::Salt"
	DomainBinding  = "ZKMTD_BINDING"

	// Aggregation and serialization.
	DomainMerkle              = "ZKMTD::Merkle"
	DomainProofIntegrity      = "PROOF_INTEGRITY"
	DomainCompressionChecksum = "COMPRESSION_CHECKSUM"
	DomainProofID             = "ZKMTD::Proof::ID"

	// Seed lifecycle and external entropy.
	DomainSolanaEntropy   = "SOLANA_ENTROPY_V1"
	DomainSeedFingerprint = "SEED_FINGERPRINT"
	DomainSeedExpand      = "ZKMTD::Seed::Expand"

	// STARK backend internals.
	DomainStarkTranscript = "ZKMTD::STARK::Transcript"
	DomainStarkTrace      = "ZKMTD::STARK::Trace"
	DomainStarkConstraint = "ZKMTD::STARK::Constraint"
	DomainStarkFRI        = "ZKMTD::STARK::FRI"
	DomainStarkQuery      = "ZKMTD::STARK::Query"
	DomainStarkOOD        = "ZKMTD::STARK::OOD"
)

// DomainTags enumerates every registered tag. The registry test asserts
// pairwise inequality.
var DomainTags = [...]string{
	DomainMTDParameters,
	DomainMTDDomainSep,
	DomainMTDSalt,
	DomainMTDFRISeed,
	DomainPVCommit,
	DomainPVSalt,
	DomainBinding,
	DomainMerkle,
	DomainProofIntegrity,
	DomainCompressionChecksum,
	DomainProofID,
	DomainSolanaEntropy,
	DomainSeedFingerprint,
	DomainSeedExpand,
	DomainStarkTranscript,
	DomainStarkTrace,
	DomainStarkConstraint,
	DomainStarkFRI,
	DomainStarkQuery,
	DomainStarkOOD,
}
