package alert_test

import (
	"testing"

	"pawpal-client/internal/alert"
)

func TestChannel_SingleSlotOverwrite(t *testing.T) {
	c := alert.NewChannel()

	if _, open := c.Current(); open {
		t.Fatal("new channel must start closed")
	}

	c.Publish("first", alert.SeverityInfo)
	c.Publish("second", alert.SeverityError)

	msg, open := c.Current()
	if !open {
		t.Fatal("expected open slot after publish")
	}
	if msg.Text != "second" || msg.Severity != alert.SeverityError {
		t.Fatalf("expected second/error, got %q/%s", msg.Text, msg.Severity)
	}
}

func TestChannel_DismissKeepsMessageButCloses(t *testing.T) {
	c := alert.NewChannel()
	c.Publish("saved", alert.SeveritySuccess)
	c.Dismiss()

	msg, open := c.Current()
	if open {
		t.Fatal("expected closed slot after dismiss")
	}
	if msg.Text != "saved" {
		t.Fatalf("message should survive dismiss, got %q", msg.Text)
	}
}

func TestChannel_DefaultSeverityIsInfo(t *testing.T) {
	c := alert.NewChannel()
	c.Publish("plain", "")

	msg, _ := c.Current()
	if msg.Severity != alert.SeverityInfo {
		t.Fatalf("expected info, got %s", msg.Severity)
	}
}

func TestChannel_SubscribersSeeEveryPublish(t *testing.T) {
	c := alert.NewChannel()

	var got []alert.Message
	c.Subscribe(func(m alert.Message) { got = append(got, m) })

	c.Publish("a", alert.SeverityInfo)
	c.Publish("b", alert.SeverityWarning)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("unexpected notifications: %+v", got)
	}
}
