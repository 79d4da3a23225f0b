package mask

// Built-in character classes, keyed by the marker letter after '?'.
// The table mirrors hashcat charset codes.
const (
	classLower   = "abcdefghijklmnopqrstuvwxyz"
	classUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	classDigit   = "0123456789"
	classSpecial = "!@#$%^&*()-_=+[]{}|;:,.<>?/\\`~\"' "
	classHex     = "0123456789abcdef"
)

// classFor resolves a class marker to its character set. Markers '1'
// through '9' index the custom list; built-ins are l, u, d, s, a, h.
func classFor(marker rune, custom []string) (string, bool) {
	if marker >= '1' && marker <= '9' {
		i := int(marker - '1')
		if i < len(custom) {
			return custom[i], true
		}
		return "", false
	}
	switch marker {
	case 'l':
		return classLower, true
	case 'u':
		return classUpper, true
	case 'd':
		return classDigit, true
	case 's':
		return classSpecial, true
	case 'a':
		return classLower + classUpper + classDigit + classSpecial, true
	case 'h':
		return classHex, true
	}
	return "", false
}
