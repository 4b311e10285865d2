package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSendWithoutCredentialsIsNoop(t *testing.T) {
	svc := NewEmailService(SMTPConfig{Host: "smtp.example.com", Port: 587}, zerolog.Nop())
	if err := svc.SendContactResponse("a@x.io", "A", "Hello", "Hi there"); err != nil {
		t.Fatalf("expected nil without credentials, got %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("CEMS", "noreply@cems.app", "a@x.io", "Re: Hello", "<p>x</p>"))

	if !strings.HasPrefix(msg, "From: CEMS <noreply@cems.app>\r\nTo: a@x.io\r\nSubject: Re: Hello\r\n") {
		t.Errorf("unexpected headers: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\n<p>x</p>") {
		t.Errorf("body not separated from headers: %q", msg)
	}
}

func TestContactResponseBodyEscapes(t *testing.T) {
	body := ContactResponseBody("<b>Eve</b>", "Q & A", "line one\nline <two>")

	if strings.Contains(body, "<b>Eve</b>") {
		t.Error("name not escaped")
	}
	if !strings.Contains(body, "Q &amp; A") {
		t.Error("subject not escaped")
	}
	if !strings.Contains(body, "line one<br>line &lt;two&gt;") {
		t.Errorf("response not rendered: %s", body)
	}
}
