// Package nats bridges the schema service onto the message bus: compile
// and UID lookup requests arrive as JSON over core NATS request/reply.
package nats

import (
	json "github.com/goccy/go-json"
)

// CompileRequest asks for the schema document addressed by a schema URI.
type CompileRequest struct {
	URI   string `json:"uri"`
	Embed bool   `json:"embed,omitempty"`
}

// CompileResponse carries one compiled schema document, or the fault that
// prevented compilation.
type CompileResponse struct {
	Success bool            `json:"success"`
	Schema  json.RawMessage `json:"schema,omitempty"`
	Code    string          `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
	TookMs  int64           `json:"took_ms"`
}

// LookupUIDRequest asks which class a class or type UID belongs to.
type LookupUIDRequest struct {
	UID int `json:"uid"`
}

// LookupUIDResponse carries the resolved class for a UID lookup.
type LookupUIDResponse struct {
	Success    bool   `json:"success"`
	UID        int    `json:"uid"`
	ClassUID   int    `json:"class_uid,omitempty"`
	ActivityID int    `json:"activity_id,omitempty"`
	ClassName  string `json:"class_name,omitempty"`
	Code       string `json:"code,omitempty"`
	Error      string `json:"error,omitempty"`
}
