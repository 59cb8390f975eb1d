package entity

const maxCodePoint = 0x10FFFF

// windows1252 maps the C1 control range to what legacy documents meant by it.
var windows1252 = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// replaceCodePoint returns the character a numeric reference stands for and
// whether the reference was a parse error.
func replaceCodePoint(code int) (rune, bool) {
	switch {
	case code == 0, code > maxCodePoint, isSurrogate(code):
		return 0xFFFD, true
	case isNonCharacter(code):
		return rune(code), true
	}
	if r, ok := windows1252[code]; ok {
		return r, true
	}
	if code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)) {
		return rune(code), true
	}
	return rune(code), false
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	return code&0xFFFE == 0xFFFE && code <= maxCodePoint
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}
