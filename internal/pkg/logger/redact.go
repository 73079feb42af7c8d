package logger

import "strings"

// RedactEmail masks the local part of an address and keeps the domain,
// which is what domain rules are decided on. A display name around the
// address is dropped: "Eve <eve@Spam.io>" logs as "ev***@spam.io".
// Local parts of two characters or less are fully masked.
func RedactEmail(email string) string {
	addr := strings.TrimSpace(email)
	if i := strings.LastIndexByte(addr, '<'); i >= 0 {
		addr = strings.TrimSuffix(addr[i+1:], ">")
	}
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 {
		return "***@***"
	}
	local := []rune(addr[:at])
	domain := strings.ToLower(addr[at+1:])
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}
	return "***@" + domain
}

// RedactSender masks a sender the way RedactEmail does. A bare domain
// carries no personal data and is logged unchanged.
func RedactSender(sender string) string {
	if !strings.Contains(sender, "@") {
		return sender
	}
	return RedactEmail(sender)
}
