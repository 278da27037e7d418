package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsNumberAndLargerThanZero(b byte) bool {
	if b == '0' {
		return false
	}
	return IsNumber(b)
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func IsLowerLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func IsLetter(b byte) bool {
	return IsLowerLetter(b) || IsUpperLetter(b)
}

// Identifiers start with a lower case letter or an underscore, class names with an upper case letter.
func IsIdentifierStart(b byte) bool {
	return IsLowerLetter(b) || IsUnderScore(b)
}

func IsLetterOrNumber(b byte) bool {
	return IsLetter(b) || IsNumber(b)
}

func IsLetterOrUnderscoreOrNumber(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || IsNumber(b)
}

func IsControl(b byte) bool {
	return b < 0x20
}

func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
