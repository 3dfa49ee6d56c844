package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"relationship-dashboard/config"
	"relationship-dashboard/utils"

	"github.com/resend/resend-go/v2"
)

type fakeResend struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeResend) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "re_123"}, nil
}

var testMessage = Message{
	From:    "Digest <digest@example.com>",
	To:      []string{"a@example.com", "b@example.com"},
	Subject: "💌 Weekly digest",
	HTML:    "<h1>Hi</h1>",
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EmailConfig
		want string
	}{
		{"Disabled", config.EmailConfig{Enabled: false}, "email.DisabledSender"},
		{"Resend default", config.EmailConfig{Enabled: true, ResendAPIKey: "re_x"}, "*email.ResendSender"},
		{"SMTP", config.EmailConfig{Enabled: true, Provider: "SMTP"}, "*email.SMTPSender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSender(tt.cfg)
			if typeName(got) != tt.want {
				t.Errorf("NewSender() = %s, want %s", typeName(got), tt.want)
			}
		})
	}
}

func typeName(s Sender) string {
	switch s.(type) {
	case DisabledSender:
		return "email.DisabledSender"
	case *ResendSender:
		return "*email.ResendSender"
	case *SMTPSender:
		return "*email.SMTPSender"
	}
	return "unknown"
}

func TestResendSender_Send(t *testing.T) {
	fake := &fakeResend{}
	rs := &ResendSender{emails: fake}

	id, err := rs.Send(context.Background(), testMessage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if id != "re_123" {
		t.Errorf("id = %q, want re_123", id)
	}
	if fake.got.From != testMessage.From || fake.got.Html != testMessage.HTML || len(fake.got.To) != 2 {
		t.Errorf("unexpected request: %+v", fake.got)
	}
}

func TestResendSender_Errors(t *testing.T) {
	if _, err := NewResendSender("").Send(context.Background(), testMessage); !errors.Is(err, utils.ErrEmailNotConfigured) {
		t.Errorf("missing key: got %v", err)
	}

	rs := &ResendSender{emails: &fakeResend{}}
	noTo := testMessage
	noTo.To = nil
	if _, err := rs.Send(context.Background(), noTo); !errors.Is(err, utils.ErrEmailNotConfigured) {
		t.Errorf("no recipients: got %v", err)
	}

	failing := &ResendSender{emails: &fakeResend{err: errors.New("domain not verified")}}
	if _, err := failing.Send(context.Background(), testMessage); err == nil || !strings.Contains(err.Error(), "domain not verified") {
		t.Errorf("upstream failure: got %v", err)
	}
}

func TestSMTPSender_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte

	ss := NewSMTPSender("smtp.example.com", "587", "user", "pass")
	ss.now = func() time.Time { return time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC) }
	ss.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		return nil
	}

	id, err := ss.Send(context.Background(), testMessage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if !strings.HasSuffix(id, "@smtp.example.com") {
		t.Errorf("id = %q", id)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "digest@example.com" {
		t.Errorf("envelope from = %q", gotFrom)
	}
	if len(gotTo) != 2 {
		t.Errorf("to = %v", gotTo)
	}

	body := string(gotBody)
	for _, want := range []string{
		"To: a@example.com, b@example.com\r\n",
		"Message-ID: <" + id + ">\r\n",
		"Subject: =?utf-8?q?",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"<h1>Hi</h1>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q:\n%s", want, body)
		}
	}
}

func TestSMTPSender_Failure(t *testing.T) {
	ss := NewSMTPSender("smtp.example.com", "587", "", "")
	ss.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	if _, err := ss.Send(context.Background(), testMessage); err == nil {
		t.Error("expected error")
	}

	unconfigured := NewSMTPSender("", "587", "", "")
	if _, err := unconfigured.Send(context.Background(), testMessage); !errors.Is(err, utils.ErrEmailNotConfigured) {
		t.Errorf("got %v", err)
	}
}

func TestDisabledSender(t *testing.T) {
	id, err := DisabledSender{}.Send(context.Background(), testMessage)
	if err != nil || id != "disabled" {
		t.Errorf("Send() = %q, %v", id, err)
	}
}

func TestEnvelopeAddress(t *testing.T) {
	if got := envelopeAddress("Name <x@y.com>"); got != "x@y.com" {
		t.Errorf("got %q", got)
	}
	if got := envelopeAddress(" x@y.com "); got != "x@y.com" {
		t.Errorf("got %q", got)
	}
}
