// Package models holds the value types returned by the desktop host commands.
package models

import "encoding/json"

// Envelope is the uniform result of a host command. Success is the
// discriminant: a successful envelope carries Data, a failed one carries
// Error. Build envelopes with Success or Failure.
//
// On the wire both data and error are always present, null when absent.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	var errMsg *string
	if e.Error != "" {
		errMsg = &e.Error
	}
	return json.Marshal(struct {
		Success bool    `json:"success"`
		Data    any     `json:"data"`
		Error   *string `json:"error"`
	}{
		Success: e.Success,
		Data:    e.Data,
		Error:   errMsg,
	})
}

// Success wraps data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps msg in a failed envelope.
func Failure(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// ErrorResponse represents a malformed request to the invoke bridge
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
