package database

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// The canonical form of a block is the hash input for the whole chain and
// must be reproducible byte for byte by every node. It is JSON with keys in
// byte order, ", " and ": " separators, non ASCII runes escaped as \uXXXX
// and floats rendered by formatFloat.

// Canonical returns the canonical byte encoding of the block.
func Canonical(b Block) []byte {
	var buf bytes.Buffer

	buf.WriteString(`{"index": `)
	buf.WriteString(strconv.FormatUint(b.Index, 10))

	buf.WriteString(`, "previous_hash": `)
	writeString(&buf, b.PreviousHash)

	buf.WriteString(`, "proof": `)
	buf.WriteString(strconv.FormatUint(b.Proof, 10))

	buf.WriteString(`, "timestamp": `)
	buf.WriteString(formatFloat(b.Timestamp))

	buf.WriteString(`, "transactions": [`)
	for i, tx := range b.Transactions {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeTx(&buf, tx)
	}
	buf.WriteString("]}")

	return buf.Bytes()
}

// writeTx encodes a transaction with its keys in sorted order.
func writeTx(buf *bytes.Buffer, tx Tx) {
	buf.WriteString(`{"amount": `)
	buf.WriteString(formatAmount(tx.Amount))

	buf.WriteString(`, "recipient": `)
	writeString(buf, tx.Recipient)

	buf.WriteString(`, "sender": `)
	writeString(buf, tx.Sender)

	buf.WriteByte('}')
}

// writeString encodes s as an ASCII only JSON string.
func writeString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"

	escape := func(r rune) {
		buf.WriteString(`\u`)
		buf.WriteByte(hex[(r>>12)&0xf])
		buf.WriteByte(hex[(r>>8)&0xf])
		buf.WriteByte(hex[(r>>4)&0xf])
		buf.WriteByte(hex[r&0xf])
	}

	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r >= 0x20 && r <= 0x7e:
			buf.WriteByte(byte(r))
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			escape(r1)
			escape(r2)
		default:
			escape(r)
		}
	}
	buf.WriteByte('"')
}

// formatAmount renders integral amounts as integers and everything
// else as a float.
func formatAmount(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return formatFloat(f)
}

// formatFloat renders the shortest decimal that round trips, always with a
// fractional part, switching to exponent form when the decimal exponent is
// < -4 or >= 16.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	exp := decimalExponent(f)
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decimalExponent returns the base 10 exponent of the shortest
// representation of f.
func decimalExponent(f float64) int {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.LastIndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return exp
}
