package kaltura

import (
	"encoding/json"
	"fmt"
)

// APIError is an error returned by the Kaltura API itself, as opposed to a
// transport-level failure. The platform replies HTTP 200 even when a call
// fails, with a KalturaAPIException envelope as the body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v (%v)", e.Message, e.Code)
}

// HandshakeError means the session service returned an empty session string
// at one of the two steps of the app-token session handshake.
type HandshakeError struct {
	Step string // "widget" or "apptoken"
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("No session string returned from %v session start", e.Step)
}

// ConfigError means the configuration file is absent or not valid JSON.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Configuration file %v: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// sniffAPIError detects the KalturaAPIException envelope in a response body.
func sniffAPIError(raw []byte) *APIError {
	envelope := struct {
		ObjectType string `json:"objectType"`
		Code       string `json:"code"`
		Message    string `json:"message"`
	}{}
	if json.Unmarshal(raw, &envelope) != nil {
		return nil
	}
	if envelope.ObjectType != "KalturaAPIException" {
		return nil
	}
	return &APIError{Code: envelope.Code, Message: envelope.Message}
}
