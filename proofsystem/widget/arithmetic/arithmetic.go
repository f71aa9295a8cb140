// Package arithmetic holds the key fragments for the arithmetic gate: the
// multiplication, wire and constant selectors together with the arithmetic
// gate switch q_arith.
package arithmetic

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitments to the arithmetic gate selectors.
// Ql, Qr and Qc are aliased with the fixed-base and logic fragments.
type VerifierKey struct {
	Qm, Ql, Qr, Qo, Q4, Qc, QArith *kzg.Digest
}

// ProverKey holds the arithmetic gate selectors in coefficient form together
// with their evaluations over the 4n coset.
type ProverKey struct {
	Qm, Ql, Qr, Qo, Q4, Qc, QArith *polynomial.Pair
}
