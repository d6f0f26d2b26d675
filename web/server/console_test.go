package server

import (
	"testing"
	"time"
)

func TestWebLogger_ForwardsMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-1", messageChan)

	logger.Printf("Spheres: %d\n", 42)
	logger.Printf("Overlapping pairs: %d\n", 3)

	expected := []string{"Spheres: 42\n", "Overlapping pairs: 3\n"}
	for i, want := range expected {
		select {
		case msg := <-messageChan:
			if msg.Message != want {
				t.Errorf("Message %d: expected %q, got %q", i, want, msg.Message)
			}
			if msg.RenderID != "render-1" {
				t.Errorf("Expected render ID render-1, got %q", msg.RenderID)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
			}
		default:
			t.Fatalf("Message %d was not forwarded", i)
		}
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-2", messageChan)

	// The second and third messages are dropped; the test passes if Printf returns
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	if msg := <-messageChan; msg.Message != "Message 1\n" {
		t.Errorf("Expected the first message to be kept, got %q", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-3", nil)
	logger.Printf("Test message with nil channel\n")
}
