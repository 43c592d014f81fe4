// Package plotfile is the thin on-disk container cmd/poc-plot writes and
// cmd/poc-mine reads back. The plotting and mining core in pkg/poc is
// deliberately I/O-free and works on caller-provided buffers; this
// package is the external collaborator that owns disk layout.
//
// A plot file is a 24-byte header (account id, start nonce, nonce count,
// all big-endian uint64) followed by count consecutive PoC2-layout
// NonceSize-byte nonces, back to back in ascending nonce order.
package plotfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"shabalcore/pkg/poc"
	"shabalcore/pkg/shabal"
)

const headerSize = 24

// Header describes a plot file's contents without reading its body.
type Header struct {
	Account poc.AccountID
	Start   poc.NonceIndex
	Count   uint64
}

// Write creates (or truncates) path and writes header followed by body,
// which must be exactly header.Count*poc.NonceSize bytes of lane-
// interleaved-then-deinterleaved (i.e. plain, linear) PoC2 nonce data.
func Write(path string, header Header, body []byte) error {
	want := header.Count * poc.NonceSize
	if uint64(len(body)) != want {
		return fmt.Errorf("plotfile: body length %d does not match header count*NonceSize (%d)", len(body), want)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plotfile: create %s: %w", path, err)
	}
	defer f.Close()

	var buf [headerSize]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(header.Account))
	binary.BigEndian.PutUint64(buf[8:16], uint64(header.Start))
	binary.BigEndian.PutUint64(buf[16:24], header.Count)

	if _, err := f.Write(buf[:]); err != nil {
		return fmt.Errorf("plotfile: write header: %w", err)
	}
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("plotfile: write body: %w", err)
	}
	return nil
}

// ReadHeader reads just the header from path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("plotfile: open %s: %w", path, err)
	}
	defer f.Close()

	var buf [headerSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return Header{}, fmt.Errorf("plotfile: read header: %w", err)
	}
	return Header{
		Account: poc.AccountID(binary.BigEndian.Uint64(buf[0:8])),
		Start:   poc.NonceIndex(binary.BigEndian.Uint64(buf[8:16])),
		Count:   binary.BigEndian.Uint64(buf[16:24]),
	}, nil
}

// Read reads a whole plot file's header and body.
func Read(path string) (Header, []byte, error) {
	header, err := ReadHeader(path)
	if err != nil {
		return Header{}, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("plotfile: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(headerSize, io.SeekStart); err != nil {
		return Header{}, nil, fmt.Errorf("plotfile: seek past header: %w", err)
	}

	body := make([]byte, header.Count*poc.NonceSize)
	if _, err := io.ReadFull(f, body); err != nil {
		return Header{}, nil, fmt.Errorf("plotfile: read body: %w", err)
	}
	return header, body, nil
}

// Caches splits a plot file's body into one poc.Cache per nonce, in
// on-disk order.
func Caches(body []byte) []poc.Cache {
	count := len(body) / poc.NonceSize
	caches := make([]poc.Cache, count)
	for i := range caches {
		caches[i] = poc.Cache(body[i*poc.NonceSize : (i+1)*poc.NonceSize])
	}
	return caches
}

// Linearize converts the lane-interleaved, per-batch output of
// poc.GenerateNonces into the plain back-to-back-per-nonce layout this
// package stores on disk, one BatchCache-sized slab at a time.
func Linearize(lanes shabal.Width, interleaved []byte) []byte {
	width := int(lanes)
	count := len(interleaved) / poc.NonceSize
	linear := make([]byte, len(interleaved))

	for batchStart := 0; batchStart < count; batchStart += width {
		slab := interleaved[batchStart*poc.NonceSize : (batchStart+width)*poc.NonceSize]
		batch := &poc.BatchCache{Width: width, Data: slab}
		for lane := 0; lane < width; lane++ {
			copy(linear[(batchStart+lane)*poc.NonceSize:], batch.Deinterleave(lane))
		}
	}
	return linear
}
