package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestLinkStripsPhoneFormatting(t *testing.T) {
	link := Link("+54 9 11 2487-3190", "hola")
	if !strings.HasPrefix(link, "https://wa.me/5491124873190?text=") {
		t.Errorf("unexpected link: %s", link)
	}
}

func TestConsultLinkEncodesMessage(t *testing.T) {
	link := ConsultLink("5491124873190", "Teclado Mecánico", 45000)
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := u.Query().Get("text")
	want := "Hola, quiero consultar por Teclado Mecánico - $45000 ARS"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}
