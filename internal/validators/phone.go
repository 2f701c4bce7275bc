package validators

import "strings"

// NormalizePhone mantém só os dígitos.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid aceita números com DDD (10 ou 11 dígitos) e, opcionalmente,
// o código do país 55 na frente.
func IsPhoneValid(phone string) bool {
	digits := NormalizePhone(phone)
	if strings.HasPrefix(digits, "55") && (len(digits) == 12 || len(digits) == 13) {
		digits = digits[2:]
	}
	if len(digits) != 10 && len(digits) != 11 {
		return false
	}
	return digits[0] != '0' && digits[1] != '0'
}

// IsSlugValid: 3 a 60 caracteres, letras minúsculas, dígitos e hífens,
// sem hífen nas pontas.
func IsSlugValid(slug string) bool {
	if len(slug) < 3 || len(slug) > 60 {
		return false
	}
	if slug[0] == '-' || slug[len(slug)-1] == '-' {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
