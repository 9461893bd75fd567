package client

import (
	"errors"
	"fmt"

	"github.com/workix/desktop/pkg/models"
)

// ErrInvalidMethod is returned for methods other than GET, POST, PUT and DELETE.
var ErrInvalidMethod = errors.New("invalid HTTP method")

// Envelope messages surfaced to the front-end.
const (
	invalidMethodMessage = "Invalid HTTP method"
	transportPrefix      = "API call failed: "
	decodePrefix         = "Failed to parse response: "
)

// Outcome labels reported by Outcome.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidMethod  = "invalid_method"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// TransportError reports a failure before or during the network exchange.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response whose body is not a single JSON value.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding backend response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Outcome classifies the error returned by Client.Do.
func Outcome(err error) string {
	var te *TransportError
	var de *DecodeError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidMethod):
		return OutcomeInvalidMethod
	case errors.As(err, &de):
		return OutcomeDecodeError
	case errors.As(err, &te):
		return OutcomeTransportError
	default:
		return OutcomeTransportError
	}
}

// Envelope folds the result of Client.Do into the envelope returned to the
// front-end.
func Envelope(value any, err error) models.Envelope {
	if err == nil {
		return models.Success(value)
	}

	var te *TransportError
	var de *DecodeError
	switch {
	case errors.Is(err, ErrInvalidMethod):
		return models.Failure(invalidMethodMessage)
	case errors.As(err, &de):
		return models.Failure(decodePrefix + de.Err.Error())
	case errors.As(err, &te):
		return models.Failure(transportPrefix + te.Err.Error())
	default:
		return models.Failure(transportPrefix + err.Error())
	}
}
