package wad

import (
	"strings"
	"unicode/utf8"
)

// decodeLossy decodes b as UTF-8, writing one utf8.RuneError for each
// maximal invalid subsequence. A truncated multi-byte sequence such as
// E2 82 yields a single marker; unrelated bad bytes yield one each.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 2*utf8.UTFMax)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[invalidPrefixLen(b):]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefixLen returns how many bytes at the start of b form the
// beginning of a well-formed sequence that was cut short. Always >= 1.
func invalidPrefixLen(b []byte) int {
	var ranges [3][2]byte
	var need int
	switch lead := b[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need, ranges = 1, [3][2]byte{{0x80, 0xBF}}
	case lead == 0xE0:
		need, ranges = 2, [3][2]byte{{0xA0, 0xBF}, {0x80, 0xBF}}
	case lead == 0xED:
		need, ranges = 2, [3][2]byte{{0x80, 0x9F}, {0x80, 0xBF}}
	case lead >= 0xE1 && lead <= 0xEF:
		need, ranges = 2, [3][2]byte{{0x80, 0xBF}, {0x80, 0xBF}}
	case lead == 0xF0:
		need, ranges = 3, [3][2]byte{{0x90, 0xBF}, {0x80, 0xBF}, {0x80, 0xBF}}
	case lead >= 0xF1 && lead <= 0xF3:
		need, ranges = 3, [3][2]byte{{0x80, 0xBF}, {0x80, 0xBF}, {0x80, 0xBF}}
	case lead == 0xF4:
		need, ranges = 3, [3][2]byte{{0x80, 0x8F}, {0x80, 0xBF}, {0x80, 0xBF}}
	default:
		return 1
	}

	n := 1
	for i := 0; i < need && n < len(b); i++ {
		if c := b[n]; c < ranges[i][0] || c > ranges[i][1] {
			break
		}
		n++
	}
	return n
}
