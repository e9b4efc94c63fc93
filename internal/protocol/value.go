// internal/protocol/value.go
package protocol

// ServiceValue is the envelope every successful upstream call produces
// before its payload is enqueued: a status code (HTTP-style, 200 by
// default), an optional human-readable message, and the typed data.
type ServiceValue[T any] struct {
    Code    uint16 `json:"code"`
    Message string `json:"message,omitempty"`
    Data    T      `json:"data,omitempty"`
}

// OK wraps data in a ServiceValue with code 200 and no message.
func OK[T any](data T) ServiceValue[T] {
    return ServiceValue[T]{Code: 200, Data: data}
}
