// Package fixedbase holds the key fragments for the fixed-base scalar
// multiplication gate.
package fixedbase

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitments used by the fixed-base scalar
// multiplication gate. Ql and Qr are aliased with the arithmetic fragment:
// one selector constrains both gate types.
type VerifierKey struct {
	QFixedGroupAdd *kzg.Digest
	Ql             *kzg.Digest
	Qr             *kzg.Digest
}

// ProverKey holds the fixed-base gate selectors and their coset evaluations.
// Ql, Qr and Qc are aliased with the arithmetic fragment.
type ProverKey struct {
	QFixedGroupAdd *polynomial.Pair
	Ql             *polynomial.Pair
	Qr             *polynomial.Pair
	Qc             *polynomial.Pair
}
