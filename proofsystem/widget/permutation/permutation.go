// Package permutation holds the key fragments for the copy-permutation
// argument: the four sigma polynomials encoding wire equality.
package permutation

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitments to the four sigma polynomials.
type VerifierKey struct {
	LeftSigma   *kzg.Digest
	RightSigma  *kzg.Digest
	OutSigma    *kzg.Digest
	FourthSigma *kzg.Digest
}

// ProverKey holds the sigma polynomials with their coset evaluations, plus
// the evaluations of the identity polynomial X over the 4n coset, needed by
// the permutation accumulator.
type ProverKey struct {
	LeftSigma   *polynomial.Pair
	RightSigma  *polynomial.Pair
	OutSigma    *polynomial.Pair
	FourthSigma *polynomial.Pair

	LinearEvaluations polynomial.Evaluations
}
