// Package ioutils provides byte-counting wrappers used by the key codecs to
// report how far into a stream a failure occurred.
package ioutils

import "io"

// WriterCounter wraps an io.Writer and counts the bytes written through it.
type WriterCounter struct {
	W io.Writer
	N int64
}

func (w *WriterCounter) Write(p []byte) (n int, err error) {
	n, err = w.W.Write(p)
	w.N += int64(n)
	return
}

// ReaderCounter wraps an io.Reader and counts the bytes read through it.
type ReaderCounter struct {
	R io.Reader
	N int64
}

func (r *ReaderCounter) Read(p []byte) (n int, err error) {
	n, err = r.R.Read(p)
	r.N += int64(n)
	return
}
