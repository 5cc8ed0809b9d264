package mailer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type recordingSender struct {
	sent   []string // "to|subject|body"
	failTo map[string]bool
}

func (r *recordingSender) Send(to, subject, body string) error {
	if r.failTo[to] {
		return errors.New("mailbox full")
	}
	r.sent = append(r.sent, to+"|"+subject+"|"+body)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRenderTemplate(t *testing.T) {
	got := RenderTemplate("Hi {{name}}, see you at the meetup, {{name}}!", "Alice")
	want := "Hi Alice, see you at the meetup, Alice!"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := RenderTemplate("no placeholder", "Alice"); got != "no placeholder" {
		t.Fatalf("got %q", got)
	}
}

func TestSendBulk_ContinuesPastFailures(t *testing.T) {
	sender := &recordingSender{failTo: map[string]bool{"b@x": true}}
	m := New(sender, quietLogger())

	res := m.SendBulk(context.Background(), []Recipient{
		{Name: "A", Email: "a@x"},
		{Name: "B", Email: "b@x"},
		{Name: "C", Email: "c@x"},
	}, "Hello", "Hi {{name}}")

	if res.Sent != 2 || res.Failed != 1 || res.Total != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "b@x") {
		t.Fatalf("errors = %v", res.Errors)
	}
	// the failed recipient must not stop later sends
	if len(sender.sent) != 2 || !strings.HasPrefix(sender.sent[1], "c@x|") {
		t.Fatalf("sent = %v", sender.sent)
	}
}

func TestSendBulk_SubstitutesNamePerRecipient(t *testing.T) {
	sender := &recordingSender{}
	m := New(sender, quietLogger())

	m.SendBulk(context.Background(), []Recipient{
		{Name: "Alice", Email: "a@x"},
		{Name: "Bob", Email: "b@x"},
	}, "s", "Dear {{name}}")

	if !strings.HasSuffix(sender.sent[0], "Dear Alice") || !strings.HasSuffix(sender.sent[1], "Dear Bob") {
		t.Fatalf("sent = %v", sender.sent)
	}
}

func TestSendBulk_MissingEmailCounted(t *testing.T) {
	m := New(&recordingSender{}, quietLogger())
	res := m.SendBulk(context.Background(), []Recipient{{Name: "Ghost"}}, "s", "m")
	if res.Failed != 1 || res.Sent != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestSendBulk_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := New(&recordingSender{}, quietLogger())
	res := m.SendBulk(ctx, []Recipient{{Name: "A", Email: "a@x"}}, "s", "m")
	if res.Sent != 0 || res.Failed != 1 {
		t.Fatalf("result = %+v", res)
	}
}
