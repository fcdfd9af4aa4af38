package record

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is one frame's flat buffers as exchanged with a host
type Snapshot struct {
	Frame       uint64    `msgpack:"f"`
	Enemies     []float64 `msgpack:"e"`
	Projectiles []float64 `msgpack:"pr"` // collision view
	Modules     []float64 `msgpack:"m"`
	Powerups    []float64 `msgpack:"pu"`
	Stars       []float64 `msgpack:"st"`
	Ship        []float64 `msgpack:"s"` // x, y, radius
	Shield      bool      `msgpack:"sh,omitempty"`
	Digest      uint64    `msgpack:"d"`
}

// Marshal encodes the snapshot as msgpack
func (s *Snapshot) Marshal() ([]byte, error) {
	return msgpack.Marshal(s)
}

// UnmarshalSnapshot decodes a msgpack snapshot and checks every buffer's stride
func UnmarshalSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate returns a *StrideError for the first buffer whose length is not a
// multiple of its stride
func (s *Snapshot) Validate() error {
	for _, c := range []struct {
		kind   string
		data   []float64
		stride int
	}{
		{"enemy", s.Enemies, EnemyStride},
		{"projectile", s.Projectiles, ProjectileStride},
		{"module", s.Modules, BodyStride},
		{"powerup", s.Powerups, BodyStride},
		{"star", s.Stars, BodyStride},
	} {
		if len(c.data)%c.stride != 0 {
			return &StrideError{Kind: c.kind, Len: len(c.data), Stride: c.stride}
		}
	}
	if len(s.Ship) != 0 && len(s.Ship) != BodyStride {
		return &StrideError{Kind: "ship", Len: len(s.Ship), Stride: BodyStride}
	}
	return nil
}

// Digest is a 64-bit xxhash of the little-endian bit patterns of the encoded enemies.
// Differing digests prove the records differ; equal digests make identity very likely, not certain.
func Digest(enemies []Enemy) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, e := range enemies {
		for _, v := range AppendEnemy(make([]float64, 0, EnemyStride), e) {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			d.Write(buf[:])
		}
	}
	return d.Sum64()
}
