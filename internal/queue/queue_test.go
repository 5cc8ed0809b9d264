package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemory_PublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	for _, body := range []string{"a", "b"} {
		if err := q.Publish(ctx, Message{Type: TypeRegistrationEmail, Body: []byte(body)}); err != nil {
			t.Fatal(err)
		}
	}

	msgs, err := q.Consume(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"a", "b"} {
		select {
		case msg := <-msgs:
			if msg.Type != TypeRegistrationEmail || string(msg.Body) != want {
				t.Fatalf("msg = %+v, want body %q", msg, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestInMemory_PublishBlockedByCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewInMemory(0)
	if err := q.Publish(ctx, Message{Type: "t"}); err == nil {
		t.Fatal("publish into a full queue must respect cancellation")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
	}{
		{name: "plain", msg: Message{Type: "t", Body: []byte("hello")}},
		{name: "separator in body", msg: Message{Type: "t", Body: []byte(`{"a":"b|c"}`)}},
		{name: "empty body", msg: Message{Type: "t", Body: []byte("")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := deserialize(serialize(tc.msg))
			if err != nil {
				t.Fatal(err)
			}
			if got.Type != tc.msg.Type || string(got.Body) != string(tc.msg.Body) {
				t.Fatalf("got %+v, want %+v", got, tc.msg)
			}
		})
	}
}

func TestDeserialize_NoSeparator(t *testing.T) {
	got, err := deserialize("raw payload")
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != "" || string(got.Body) != "raw payload" {
		t.Fatalf("got %+v", got)
	}
}
