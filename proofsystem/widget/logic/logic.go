// Package logic holds the key fragments for the boolean logic gate.
package logic

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitments used by the logic gate. Qc is aliased
// with the arithmetic fragment.
type VerifierKey struct {
	QLogic *kzg.Digest
	Qc     *kzg.Digest
}

// ProverKey holds the logic gate selectors and their coset evaluations.
type ProverKey struct {
	QLogic *polynomial.Pair
	Qc     *polynomial.Pair
}
