package validators

import (
	"net"
	"strings"
)

// lookups são variáveis para os testes não dependerem de DNS.
var (
	lookupMX = net.LookupMX
	lookupIP = net.LookupIP
)

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := lookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
