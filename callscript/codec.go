// Package callscript encodes and decodes call scripts: a version identifier
// followed by a sequence of (target, call-data) records that a governance
// contract executes atomically, in order.
//
// Layout of a version 1 script, all integers big-endian:
//
//	[4]  version id 0x00000001
//	[20] record target
//	[4]  record payload length L
//	[L]  record payload
//	...  further records until the end of the buffer
package callscript

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// Version1 is the only supported script version.
	Version1 uint32 = 0x00000001

	// VersionLength is the size of the leading version id.
	VersionLength = 4

	// LengthFieldSize is the size of a record's payload length field.
	LengthFieldSize = 4

	// RecordHeaderSize is the fixed part of every record: target and length.
	RecordHeaderSize = common.AddressLength + LengthFieldSize

	// MaxPayloadSize is the largest payload the length field can describe.
	MaxPayloadSize = math.MaxUint32
)

// payloadLen reports the length Encode frames for a payload. Tests replace it
// to reach the size limit without allocating 4 GiB.
var payloadLen = func(data []byte) uint64 { return uint64(len(data)) }

// EncodeActions normalizes actions and encodes them into a version 1 script.
func EncodeActions(actions []Action) ([]byte, error) {
	records, err := Normalize(actions)
	if err != nil {
		return nil, err
	}
	return Encode(records)
}

// Encode serializes records, in order, into a version 1 script. An empty
// record list yields just the version id.
func Encode(records []Record) ([]byte, error) {
	size := VersionLength
	for i, r := range records {
		if err := checkPayloadSize(payloadLen(r.Data)); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		size += RecordHeaderSize + len(r.Data)
	}

	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, Version1)
	for _, r := range records {
		buf = append(buf, r.Target.Bytes()...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Data)))
		buf = append(buf, r.Data...)
	}
	return buf, nil
}

// Decode parses a version 1 script back into its records. The returned
// payloads share memory with script.
func Decode(script []byte) ([]Record, error) {
	if len(script) < VersionLength {
		return nil, fmt.Errorf("%w: script is %d bytes, shorter than version id", ErrUnsupportedVersion, len(script))
	}
	if v := binary.BigEndian.Uint32(script); v != Version1 {
		return nil, fmt.Errorf("%w: 0x%08x", ErrUnsupportedVersion, v)
	}

	var (
		records []Record
		offset  = VersionLength
	)
	for offset < len(script) {
		rest := len(script) - offset
		if rest < RecordHeaderSize {
			return nil, fmt.Errorf("%w: record %d header needs %d bytes at offset %d, have %d",
				ErrTruncatedScript, len(records), RecordHeaderSize, offset, rest)
		}
		target := common.BytesToAddress(script[offset : offset+common.AddressLength])
		offset += common.AddressLength

		length := uint64(binary.BigEndian.Uint32(script[offset:]))
		offset += LengthFieldSize

		if uint64(len(script)-offset) < length {
			return nil, fmt.Errorf("%w: record %d declares %d payload bytes at offset %d, have %d",
				ErrTruncatedScript, len(records), length, offset, len(script)-offset)
		}
		end := offset + int(length)
		records = append(records, Record{Target: target, Data: script[offset:end:end]})
		offset = end
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func checkPayloadSize(n uint64) error {
	if n > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, n, uint64(MaxPayloadSize))
	}
	return nil
}
