// Package curveadd holds the key fragments for the variable-base curve
// addition gate.
package curveadd

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitment to the variable-base addition selector.
type VerifierKey struct {
	QVariableGroupAdd *kzg.Digest
}

// ProverKey holds the variable-base addition selector and its coset
// evaluations.
type ProverKey struct {
	QVariableGroupAdd *polynomial.Pair
}
