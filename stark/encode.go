// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"encoding/binary"

	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/merkle"
)

// Backend proof layout:
//
//	version | air | numRows LE32 | width | root 32 | ood 32 | fri 32 |
//	openingCount LE16 | openings...
//
// Each opening: index LE32 | width*8 row bytes | pathLen | pathLen * 33.
type backendProof struct {
	air      AirType
	numRows  int
	width    int
	root     hashing.Digest
	ood      hashing.Digest
	fri      hashing.Digest
	openings []opening
}

func encodeBackendProof(air AirType, numRows, width int, root, ood, fri hashing.Digest, open []opening) []byte {
	buf := make([]byte, 0, 128+len(open)*(4+width*8+1))
	buf = append(buf, proofVersion, byte(air))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(numRows))
	buf = append(buf, byte(width))
	buf = append(buf, root[:]...)
	buf = append(buf, ood[:]...)
	buf = append(buf, fri[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(open)))
	for _, o := range open {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(o.index))
		buf = append(buf, field.SerializeVec(o.row)...)
		buf = append(buf, byte(len(o.path)))
		for _, node := range o.path {
			buf = append(buf, node.Sibling[:]...)
			buf = append(buf, byte(node.Side))
		}
	}
	return buf
}

func decodeBackendProof(b []byte) (*backendProof, error) {
	const header = 1 + 1 + 4 + 1 + 32 + 32 + 32 + 2
	if len(b) < header {
		return nil, ErrMalformedProof
	}
	if b[0] != proofVersion {
		return nil, ErrMalformedProof
	}
	p := &backendProof{
		air:     AirType(b[1]),
		numRows: int(binary.LittleEndian.Uint32(b[2:6])),
		width:   int(b[6]),
	}
	if !p.air.Valid() || p.width == 0 || p.width > 8 {
		return nil, ErrMalformedProof
	}
	off := 7
	copy(p.root[:], b[off:off+32])
	off += 32
	copy(p.ood[:], b[off:off+32])
	off += 32
	copy(p.fri[:], b[off:off+32])
	off += 32
	count := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2

	rowSize := p.width * field.ElementSize
	p.openings = make([]opening, 0, count)
	for k := 0; k < count; k++ {
		if off+4+rowSize+1 > len(b) {
			return nil, ErrMalformedProof
		}
		o := opening{index: int(binary.LittleEndian.Uint32(b[off : off+4]))}
		off += 4
		row, err := field.DeserializeVec(b[off : off+rowSize])
		if err != nil {
			return nil, ErrMalformedProof
		}
		o.row = row
		off += rowSize
		pathLen := int(b[off])
		off++
		if off+pathLen*33 > len(b) {
			return nil, ErrMalformedProof
		}
		o.path = make(merkle.Path, pathLen)
		for n := 0; n < pathLen; n++ {
			copy(o.path[n].Sibling[:], b[off:off+32])
			side := b[off+32]
			if side > 1 {
				return nil, ErrMalformedProof
			}
			o.path[n].Side = merkle.Side(side)
			off += 33
		}
		p.openings = append(p.openings, o)
	}
	if off != len(b) {
		return nil, ErrMalformedProof
	}
	return p, nil
}
