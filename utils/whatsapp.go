// utils/whatsapp.go
package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// StripPhoneDigits drops everything but digits from a free-form phone
// number, which is what wa.me expects.
func StripPhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link for the phone number, optionally
// carrying a pre-filled message.
func WhatsAppLink(phone, message string) string {
	link := "https://wa.me/" + StripPhoneDigits(phone)
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}
