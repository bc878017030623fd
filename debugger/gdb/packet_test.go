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

import (
	"testing"

	"github.com/dragon-emu/gopherdragon/test"
)

// feed pushes a byte sequence through the decoder, returning the last
// non-trivial event.
func feed(dec *decoder, stream []byte) event {
	last := evNone
	for _, b := range stream {
		if ev := dec.push(b); ev != evNone {
			last = ev
		}
	}
	return last
}

func TestDecodeSimplePacket(t *testing.T) {
	var dec decoder

	// 'g' is 0x67 so the checksum is 67
	test.ExpectEquality(t, feed(&dec, []byte("$g#67")), evPacket)
	test.ExpectEquality(t, string(dec.payload), "g")
}

func TestRoundTrip(t *testing.T) {
	payloads := []string{
		"",
		"g",
		"m1000,4",
		"qSupported:multiprocess+;swbreak+",
		"contains every escaped byte # $ } *",
		"#$}*",
		"}}}}",
	}

	var dec decoder
	for _, p := range payloads {
		test.ExpectEquality(t, feed(&dec, encodePacket([]byte(p))), evPacket)
		test.ExpectEquality(t, string(dec.payload), p)
	}
}

func TestChecksumMismatch(t *testing.T) {
	var dec decoder

	test.ExpectEquality(t, feed(&dec, []byte("$g#68")), evBadChecksum)

	// the decoder recovers for the retransmission
	test.ExpectEquality(t, feed(&dec, []byte("$g#67")), evPacket)
	test.ExpectEquality(t, string(dec.payload), "g")
}

func TestCorruptionDetection(t *testing.T) {
	// flipping any single bit of the payload or checksum must be noticed
	packet := encodePacket([]byte("m1000,4"))

	for i := 1; i < len(packet); i++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := make([]byte, len(packet))
			copy(corrupt, packet)
			corrupt[i] ^= 1 << bit

			var dec decoder
			if feed(&dec, corrupt) == evPacket && string(dec.payload) == "m1000,4" {
				t.Errorf("corruption of byte %d bit %d went undetected", i, bit)
			}
		}
	}
}

func TestInterruptByte(t *testing.T) {
	var dec decoder

	test.ExpectEquality(t, dec.push(interruptByte), evBreak)

	// the interrupt byte is plain data inside a packet
	test.ExpectEquality(t, feed(&dec, []byte{'$', interruptByte, '#', '0', '3'}), evPacket)
	test.ExpectEquality(t, dec.payload[0], byte(interruptByte))
}

func TestNonHexChecksumAborts(t *testing.T) {
	var dec decoder

	test.ExpectEquality(t, feed(&dec, []byte("$g#6z")), evNone)

	// back to hunting for a start byte
	test.ExpectEquality(t, feed(&dec, []byte("$g#67")), evPacket)
}

func TestAcknowledgementBytesIgnored(t *testing.T) {
	var dec decoder

	// stray acks from our own transmissions arrive between packets
	test.ExpectEquality(t, feed(&dec, []byte("++-+$g#67")), evPacket)
	test.ExpectEquality(t, string(dec.payload), "g")
}

func TestHexHelpers(t *testing.T) {
	test.ExpectEquality(t, hexDigit('0'), 0)
	test.ExpectEquality(t, hexDigit('f'), 15)
	test.ExpectEquality(t, hexDigit('A'), 10)
	test.ExpectEquality(t, hexDigit('g'), -1)

	test.ExpectEquality(t, hexByte('5', 'a'), 0x5a)
	test.ExpectEquality(t, hexByte('5', 'x'), -1)

	test.ExpectEquality(t, hexWord([]byte("beef")), 0xbeef)
	test.ExpectEquality(t, hexWord([]byte("bee")), -1)

	test.ExpectEquality(t, hexField([]byte("0")), 0)
	test.ExpectEquality(t, hexField([]byte("1000")), 0x1000)
	test.ExpectEquality(t, hexField([]byte("")), -1)
	test.ExpectEquality(t, hexField([]byte("12x4")), -1)

	test.ExpectEquality(t, string(appendHexByte(nil, 0xab)), "ab")
	test.ExpectEquality(t, string(appendHexWord(nil, 0x1234)), "1234")
	test.ExpectEquality(t, string(appendHexText(nil, "OK")), "4f4b")
}
