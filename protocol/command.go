package protocol

import (
	"math"
	"strconv"
)

// NormalizeCode folds an ASCII lower-case letter to upper case.
// Any other byte is returned unchanged.
func NormalizeCode(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// ParseArg parses the argument part of a command line the way the firmware
// always has: leading white space is skipped, an optional sign is accepted
// and the longest run of decimal digits is converted. Anything that does
// not start with a number parses as 0. Out-of-range values saturate.
func ParseArg(data []byte) int32 {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}

	negative := false
	if i < len(data) && (data[i] == '-' || data[i] == '+') {
		negative = data[i] == '-'
		i++
	}

	var value int64
	for ; i < len(data); i++ {
		c := data[i]
		if c < '0' || c > '9' {
			break
		}
		value = value*10 + int64(c-'0')
		if value > math.MaxInt32+1 {
			value = math.MaxInt32 + 1
		}
	}

	if negative {
		value = -value
	}
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < math.MinInt32 {
		return math.MinInt32
	}
	return int32(value)
}

// isSpace matches the C locale white space set
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// AppendCommand appends one command line, newline included, to dst
func AppendCommand(dst []byte, code byte, arg int32) []byte {
	dst = append(dst, code)
	dst = strconv.AppendInt(dst, int64(arg), 10)
	return append(dst, LineEnd)
}

// FormatCommand returns a complete command line such as "H-2048\n"
func FormatCommand(code byte, arg int32) string {
	return string(AppendCommand(make([]byte, 0, 16), code, arg))
}
