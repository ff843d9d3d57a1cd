package format

import "strings"

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r >= 0xE0020 && r <= 0xE007F:
		return true
	case r == 0xFE0F, r == 0x200D:
		return true
	}
	return false
}

// StripEmoji drops emoji code points, which WhatsApp Web and the thermal
// printer both mangle.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, s)
}
