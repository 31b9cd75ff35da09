// Package whatsapp builds wa.me deep links with pre-filled consultation
// messages. This is pure string formatting; no API call is made.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// ConsultLink returns a wa.me link for phone with a templated product
// inquiry. The phone number is stripped to digits; the message is
// URL-encoded into the text parameter.
func ConsultLink(phone, productName string, price float64) string {
	msg := fmt.Sprintf("Hola, quiero consultar por %s - $%.0f ARS", productName, price)
	return Link(phone, msg)
}

// Link returns a wa.me link for phone carrying an arbitrary pre-filled text.
func Link(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return baseURL + digits + "?text=" + url.QueryEscape(text)
}
