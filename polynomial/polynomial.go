// Package polynomial defines the polynomial and evaluation representations
// shared by the widget proving keys, together with the coset-evaluation
// helpers used at circuit setup.
package polynomial

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// Polynomial is a polynomial in coefficient form, constant term first.
type Polynomial []fr.Element

// Evaluations holds the values of a polynomial over the coset of the big
// (4n) evaluation domain, in natural order.
type Evaluations []fr.Element

// Pair couples a selector or sigma polynomial with its evaluations over the
// 4n coset. Widget fragments that share a selector hold the same *Pair, so
// aliasing is structural rather than value-equal.
type Pair struct {
	Poly  Polynomial
	Evals Evaluations
}

// Degree returns the degree of p, ignoring trailing zero coefficients.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return 0
}

// Evaluate computes p(x) with Horner's method.
func (p Polynomial) Evaluate(x *fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, x)
		res.Add(&res, &p[i])
	}
	return res
}

// NewPair evaluates p over the coset of domainBig and couples the
// evaluations with p. len(p) must not exceed the domain cardinality.
func NewPair(p Polynomial, domainBig *fft.Domain) *Pair {
	evals := make([]fr.Element, domainBig.Cardinality)
	copy(evals, p)
	domainBig.FFT(evals, fft.DIF, fft.OnCoset())
	fft.BitReverse(evals)
	return &Pair{Poly: p, Evals: evals}
}

// EvaluateVanishingOnCoset evaluates X^n - 1, with n the cardinality of
// domainSmall, over the coset of domainBig. The result has one value per
// coset point; it is periodic with period Cardinality(big)/Cardinality(small)
// but is expanded to the full domain so all evaluation blocks of a proving
// key share one length.
func EvaluateVanishingOnCoset(domainSmall, domainBig *fft.Domain) Evaluations {
	ratio := domainBig.Cardinality / domainSmall.Cardinality

	period := make([]fr.Element, ratio)
	expo := new(big.Int).SetUint64(domainSmall.Cardinality)

	// g = w_big^n, so (shift*w_big^i)^n = shift^n * g^i
	var g fr.Element
	g.Exp(domainBig.Generator, expo)
	period[0].Exp(domainBig.FrMultiplicativeGen, expo)
	for i := 1; i < int(ratio); i++ {
		period[i].Mul(&period[i-1], &g)
	}

	one := fr.One()
	for i := range period {
		period[i].Sub(&period[i], &one)
	}

	res := make(Evaluations, domainBig.Cardinality)
	for i := range res {
		res[i].Set(&period[uint64(i)%ratio])
	}
	return res
}

// EvaluateLinearOnCoset evaluates the identity polynomial X over the coset
// of domainBig: res[i] = shift * w_big^i. Used by the copy-permutation
// argument as its linear evaluations.
func EvaluateLinearOnCoset(domainBig *fft.Domain) Evaluations {
	res := make(Evaluations, domainBig.Cardinality)
	res[0].Set(&domainBig.FrMultiplicativeGen)
	for i := 1; i < len(res); i++ {
		res[i].Mul(&res[i-1], &domainBig.Generator)
	}
	return res
}
