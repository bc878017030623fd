// This file is part of Gopherdragon.
//
// Gopherdragon is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherdragon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherdragon.  If not, see <https://www.gnu.org/licenses/>.

package gdb

// Packet framing is $<payload>#<checksum>, where the checksum is two hex
// digits of the 8-bit sum of the payload bytes. The bytes # $ } * cannot
// appear in a payload verbatim and travel as } followed by the byte XORed
// with 0x20. Checksums are computed over the logical payload, before
// escaping on the way out and after unescaping on the way in.

// the largest payload the decoder will accumulate. also advertised to the
// client through qSupported
const maxPayload = 1024

// the byte sent by a client to interrupt a running target. not part of any
// packet
const interruptByte = 0x03

type decodeState int

const (
	waitStart decodeState = iota
	reading
	checksumHigh
	checksumLow
)

// event is the outcome of feeding one byte to the decoder.
type event int

const (
	// nothing of note. keep feeding bytes
	evNone event = iota

	// a packet with a valid checksum is available in the payload field
	evPacket

	// a complete packet arrived but its checksum did not match
	evBadChecksum

	// the interrupt byte arrived between packets
	evBreak
)

// decoder reassembles packets from a byte stream. One instance per
// connection, reset when a new client connects.
type decoder struct {
	state   decodeState
	payload []byte

	// whether the previous byte was the escape character
	escaped bool

	sum      uint8
	declared uint8
}

func (dec *decoder) reset() {
	dec.state = waitStart
	dec.payload = dec.payload[:0]
	dec.escaped = false
	dec.sum = 0
	dec.declared = 0
}

// push feeds a single byte to the decoder.
func (dec *decoder) push(b byte) event {
	switch dec.state {
	case waitStart:
		switch b {
		case '$':
			dec.payload = dec.payload[:0]
			dec.escaped = false
			dec.sum = 0
			dec.state = reading
		case interruptByte:
			return evBreak
		}
		// anything else between packets, including the + and - bytes
		// acknowledging our own transmissions, is consumed silently

	case reading:
		if b == '#' && !dec.escaped {
			dec.state = checksumHigh
			break
		}
		if b == '}' && !dec.escaped {
			dec.escaped = true
			break
		}
		if dec.escaped {
			b ^= 0x20
			dec.escaped = false
		}
		if len(dec.payload) >= maxPayload {
			// a runaway packet. give up and hunt for the next start byte
			dec.reset()
			break
		}
		dec.sum += b
		dec.payload = append(dec.payload, b)

	case checksumHigh:
		v := hexDigit(b)
		if v < 0 {
			dec.reset()
			break
		}
		dec.declared = uint8(v) << 4
		dec.state = checksumLow

	case checksumLow:
		v := hexDigit(b)
		if v < 0 {
			dec.reset()
			break
		}
		dec.declared |= uint8(v)
		dec.state = waitStart
		if dec.declared != dec.sum {
			return evBadChecksum
		}
		return evPacket
	}

	return evNone
}

// encodePacket frames a payload for transmission.
func encodePacket(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+4)
	out = append(out, '$')

	var sum uint8
	for _, b := range payload {
		sum += b
		switch b {
		case '#', '$', '}', '*':
			out = append(out, '}', b^0x20)
		default:
			out = append(out, b)
		}
	}

	out = append(out, '#', hexChars[sum>>4], hexChars[sum&0x0f])
	return out
}

const hexChars = "0123456789abcdef"

// hexDigit returns the value of a single hex digit, or -1 if the byte is not
// a hex digit.
func hexDigit(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// hexByte returns the value of a two digit hex pair, or -1.
func hexByte(hi byte, lo byte) int {
	h := hexDigit(hi)
	l := hexDigit(lo)
	if h < 0 || l < 0 {
		return -1
	}
	return h<<4 | l
}

// hexWord returns the value of the four digit hex field at the start of p,
// or -1.
func hexWord(p []byte) int {
	if len(p) < 4 {
		return -1
	}
	hi := hexByte(p[0], p[1])
	lo := hexByte(p[2], p[3])
	if hi < 0 || lo < 0 {
		return -1
	}
	return hi<<8 | lo
}

// hexField returns the value of a variable length hex field, or -1. Used
// for the free-form numeric arguments of the m, M, p, P, Z and z commands.
func hexField(p []byte) int {
	if len(p) == 0 || len(p) > 8 {
		return -1
	}
	v := 0
	for _, b := range p {
		d := hexDigit(b)
		if d < 0 {
			return -1
		}
		v = v<<4 | d
	}
	return v
}

func appendHexByte(dst []byte, v uint8) []byte {
	return append(dst, hexChars[v>>4], hexChars[v&0x0f])
}

func appendHexWord(dst []byte, v uint16) []byte {
	dst = appendHexByte(dst, uint8(v>>8))
	return appendHexByte(dst, uint8(v))
}

// appendHexText hex-encodes human readable text, as used by the qRcmd
// command in both directions.
func appendHexText(dst []byte, s string) []byte {
	for _, b := range []byte(s) {
		dst = appendHexByte(dst, b)
	}
	return dst
}
