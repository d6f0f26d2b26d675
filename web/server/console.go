package server

import (
	"fmt"
	"log"
	"time"

	"github.com/df07/go-reflection-raytracer/pkg/core"
)

// ConsoleMessage is a log line captured for a web client
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WebLogger implements core.Logger by writing to the server log and,
// when a channel is given, forwarding each message to it
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for a single request
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}
	// Drop the message rather than block a render on a slow reader
	select {
	case wl.consoleChan <- ConsoleMessage{RenderID: wl.renderID, Message: message, Timestamp: time.Now()}:
	default:
	}
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
