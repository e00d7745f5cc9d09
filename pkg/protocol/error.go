package protocol

import "fmt"

// ErrorMessage is sent in a FrameError.
type ErrorMessage struct {
	Code    string // diagnostic code, e.g. "P001"
	Message string
	Fatal   bool // the sender closes the connection after this frame
}

// EncodeErrorMessage encodes an ErrorMessage.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: message, Fatal: fatal}, nil
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a fatal ErrorMessage.
func NewFatalError(code, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return fmt.Sprintf("protocol: fatal %s: %s", em.Code, em.Message)
	}
	return fmt.Sprintf("protocol: %s: %s", em.Code, em.Message)
}
