// Package plookup holds the witness-table types consumed by the lookup
// argument. A table is an opaque sequence of fixed-arity rows of scalars;
// how a finalized lookup table is populated (e.g. from a hash gadget) is
// outside this package.
package plookup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/plonkup/plonkup/internal/ioutils"
)

// ErrColumnMismatch is returned when wire columns of different lengths are
// zipped into a table.
var ErrColumnMismatch = errors.New("plookup: wire columns have different lengths")

// WitnessTable3 is a lookup witness table with three wires per row.
type WitnessTable3 [][3]fr.Element

// WitnessTable4 is a lookup witness table with four wires per row.
type WitnessTable4 [][4]fr.Element

// NewWitnessTable3 zips three wire-value columns into rows.
func NewWitnessTable3(a, b, c []fr.Element) (WitnessTable3, error) {
	if len(a) != len(b) || len(a) != len(c) {
		return nil, ErrColumnMismatch
	}
	t := make(WitnessTable3, len(a))
	for i := range t {
		t[i] = [3]fr.Element{a[i], b[i], c[i]}
	}
	return t, nil
}

// NewWitnessTable4 zips four wire-value columns into rows.
func NewWitnessTable4(a, b, c, d []fr.Element) (WitnessTable4, error) {
	if len(a) != len(b) || len(a) != len(c) || len(a) != len(d) {
		return nil, ErrColumnMismatch
	}
	t := make(WitnessTable4, len(a))
	for i := range t {
		t[i] = [4]fr.Element{a[i], b[i], c[i], d[i]}
	}
	return t, nil
}

// WriteTo serializes t as a big-endian uint64 row count followed by the raw
// row scalars.
func (t WitnessTable3) WriteTo(w io.Writer) (int64, error) {
	cw := ioutils.WriterCounter{W: w}

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(t)))
	if _, err := cw.Write(size[:]); err != nil {
		return cw.N, err
	}

	for i := range t {
		for j := range t[i] {
			b := t[i][j].Bytes()
			if _, err := cw.Write(b[:]); err != nil {
				return cw.N, err
			}
		}
	}
	return cw.N, nil
}

// ReadFrom deserializes t from r, mirroring WriteTo. Truncated input and
// non-canonical scalars return errors.
func (t *WitnessTable3) ReadFrom(r io.Reader) (int64, error) {
	cr := ioutils.ReaderCounter{R: r}

	var size [8]byte
	if _, err := io.ReadFull(&cr, size[:]); err != nil {
		return cr.N, fmt.Errorf("reading row count: %w", err)
	}
	nbRows := binary.BigEndian.Uint64(size[:])

	rows := make(WitnessTable3, 0, min(nbRows, 1024))
	var buf [fr.Bytes]byte
	for i := uint64(0); i < nbRows; i++ {
		var row [3]fr.Element
		for j := range row {
			if _, err := io.ReadFull(&cr, buf[:]); err != nil {
				return cr.N, fmt.Errorf("reading row %d: %w", i, err)
			}
			if err := row[j].SetBytesCanonical(buf[:]); err != nil {
				return cr.N, fmt.Errorf("decoding row %d: %w", i, err)
			}
		}
		rows = append(rows, row)
	}

	*t = rows
	return cr.N, nil
}

// WriteTo serializes t as a big-endian uint64 row count followed by the raw
// row scalars.
func (t WitnessTable4) WriteTo(w io.Writer) (int64, error) {
	cw := ioutils.WriterCounter{W: w}

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(t)))
	if _, err := cw.Write(size[:]); err != nil {
		return cw.N, err
	}

	for i := range t {
		for j := range t[i] {
			b := t[i][j].Bytes()
			if _, err := cw.Write(b[:]); err != nil {
				return cw.N, err
			}
		}
	}
	return cw.N, nil
}

// ReadFrom deserializes t from r, mirroring WriteTo. Truncated input and
// non-canonical scalars return errors.
func (t *WitnessTable4) ReadFrom(r io.Reader) (int64, error) {
	cr := ioutils.ReaderCounter{R: r}

	var size [8]byte
	if _, err := io.ReadFull(&cr, size[:]); err != nil {
		return cr.N, fmt.Errorf("reading row count: %w", err)
	}
	nbRows := binary.BigEndian.Uint64(size[:])

	rows := make(WitnessTable4, 0, min(nbRows, 1024))
	var buf [fr.Bytes]byte
	for i := uint64(0); i < nbRows; i++ {
		var row [4]fr.Element
		for j := range row {
			if _, err := io.ReadFull(&cr, buf[:]); err != nil {
				return cr.N, fmt.Errorf("reading row %d: %w", i, err)
			}
			if err := row[j].SetBytesCanonical(buf[:]); err != nil {
				return cr.N, fmt.Errorf("decoding row %d: %w", i, err)
			}
		}
		rows = append(rows, row)
	}

	*t = rows
	return cr.N, nil
}
