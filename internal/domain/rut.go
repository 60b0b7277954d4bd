package domain

import "strings"

// NormalizeRUT strips dots and hyphens from a Chilean RUT and uppercases the
// check digit, e.g. "12.345.678-5" -> "123456785".
func NormalizeRUT(rut string) string {
	r := strings.ToUpper(strings.TrimSpace(rut))
	r = strings.ReplaceAll(r, ".", "")
	return strings.ReplaceAll(r, "-", "")
}

// ValidRUT reports whether rut carries a correct mod-11 check digit. The
// input may be formatted or already normalized.
func ValidRUT(rut string) bool {
	r := NormalizeRUT(rut)
	if len(r) < 2 {
		return false
	}
	body, dv := r[:len(r)-1], r[len(r)-1]
	for _, c := range body {
		if c < '0' || c > '9' {
			return false
		}
	}
	if dv != 'K' && (dv < '0' || dv > '9') {
		return false
	}
	return computeDV(body) == dv
}

// computeDV applies the standard algorithm: multiply the reversed body by the
// cyclic factors 2..7, take 11 - (sum mod 11); 11 maps to '0' and 10 to 'K'.
func computeDV(body string) byte {
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch res := 11 - sum%11; {
	case res == 11:
		return '0'
	case res == 10:
		return 'K'
	default:
		return byte('0' + res)
	}
}
