package values

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds a kind tag and a normalised payload into xxhash
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(k Kind) *hasher {
	h := &hasher{d: xxhash.New()}
	h.d.Write([]byte{byte(k)})
	return h
}

func (h *hasher) writeUint64(u uint64) {
	binary.BigEndian.PutUint64(h.buf[:], u)
	h.d.Write(h.buf[:])
}

func (h *hasher) writeFloat(d float64) {
	h.writeUint64(floatBits(d))
}

func (h *hasher) writeLen(n int) {
	h.writeUint64(uint64(n))
}

func (h *hasher) writeBool(b bool) {
	if b {
		h.d.Write([]byte{1})
	} else {
		h.d.Write([]byte{0})
	}
}

func (h *hasher) writeString(s string) {
	h.d.WriteString(s)
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}
