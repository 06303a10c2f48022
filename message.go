package pollws

import "fmt"

// MessageType identifies the payload kind of a WebSocket message.
// The values match the RFC 6455 data frame opcodes (and gorilla/websocket's
// TextMessage/BinaryMessage constants), so backends can map them directly.
type MessageType int

const (
	// MessageText is a UTF-8 text message.
	MessageText MessageType = 1

	// MessageBinary is an opaque binary message.
	MessageBinary MessageType = 2
)

// String returns the string representation of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageText:
		return "Text"
	case MessageBinary:
		return "Binary"
	default:
		return fmt.Sprintf("MessageType(%d)", int(t))
	}
}

// Message is a single WebSocket data message, either text or binary.
//
// A Message is immutable once produced: backends hand out payload slices
// they will never touch again, and callers must not modify Data after
// passing a Message to Send.
type Message struct {
	Type MessageType
	Data []byte
}

// Text creates a text message. The backend boundary guarantees that text
// payloads received off the wire are valid UTF-8; this constructor performs
// no validation of its own.
func Text(s string) Message {
	return Message{Type: MessageText, Data: []byte(s)}
}

// Binary creates a binary message. The payload is opaque and unbounded at
// this layer.
func Binary(data []byte) Message {
	return Message{Type: MessageBinary, Data: data}
}

// String returns the payload decoded as a string. For binary messages this
// is only meaningful for debugging.
func (m Message) String() string {
	return string(m.Data)
}
