package porridge

import (
	"net"
	"strings"
	"unicode"
)

// MaskType names a known data format with masking rules.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-41d4-a716-446655440000 -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f.
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// MaskerFor returns the builtin masker for mt.
func MaskerFor(mt MaskType) (Masker, bool) {
	m, ok := builtinMaskers[mt]
	return m, ok
}

var builtinMaskers = map[MaskType]Masker{
	MaskSSN:   MaskerFunc(maskSSN),
	MaskEmail: MaskerFunc(maskEmail),
	MaskPhone: MaskerFunc(maskPhone),
	MaskCard:  MaskerFunc(maskCard),
	MaskIP:    MaskerFunc(maskIP),
	MaskUUID:  MaskerFunc(maskUUID),
	MaskIBAN:  MaskerFunc(maskIBAN),
	MaskName:  MaskerFunc(maskName),
}

func stars(n int) string {
	return strings.Repeat("*", n)
}

func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// lastFour returns the trailing four digits of value, or false when value
// carries fewer than four.
func lastFour(value string) (string, int, bool) {
	d := digitsOf(value)
	if len(d) < 4 {
		return "", len(d), false
	}
	return d[len(d)-4:], len(d), true
}

func maskSSN(value string) string {
	tail, _, ok := lastFour(value)
	if !ok {
		return stars(len(value))
	}
	return "***-**-" + tail
}

func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return stars(len(value))
	}
	return value[:1] + "***" + value[at:]
}

func maskPhone(value string) string {
	tail, n, ok := lastFour(value)
	switch {
	case !ok:
		return stars(len(value))
	case n >= 10 && strings.HasPrefix(value, "("):
		return "(***) ***-" + tail
	case n >= 10:
		return "***-***-" + tail
	default:
		return "***-" + tail
	}
}

func maskCard(value string) string {
	tail, n, ok := lastFour(value)
	if !ok {
		return stars(len(value))
	}

	sep := ""
	switch {
	case strings.Contains(value, " "):
		sep = " "
	case strings.Contains(value, "-"):
		sep = "-"
	}
	if sep == "" {
		return stars(n-4) + tail
	}

	groups := make([]string, (n-1)/4)
	for i := range groups {
		groups[i] = "****"
	}
	return strings.Join(append(groups, tail), sep)
}

func maskIP(value string) string {
	ip := net.ParseIP(value)
	switch {
	case ip == nil:
		return stars(len(value))
	case ip.To4() != nil:
		parts := strings.Split(ip.To4().String(), ".")
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}

	// Keep the 64-bit network prefix, hide the interface identifier.
	full := ip.To16()
	var b strings.Builder
	for i := 0; i < 8; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(hex4(full[i], full[i+1]))
	}
	b.WriteString(":xxxx:xxxx:xxxx:xxxx")
	return b.String()
}

func hex4(hi, lo byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[hi>>4], digits[hi&0x0f], digits[lo>>4], digits[lo&0x0f]})
}

func maskUUID(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 5 {
		return stars(len(value))
	}
	return parts[0] + "-****-****-****-************"
}

func maskIBAN(value string) string {
	if len(value) <= 8 {
		return stars(len(value))
	}
	return value[:4] + stars(len(value)-8) + value[len(value)-4:]
}

func maskName(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		r := []rune(w)
		words[i] = string(r[0]) + stars(len(r)-1)
	}
	return strings.Join(words, " ")
}
