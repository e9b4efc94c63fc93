// internal/proto/support.go
// Shared helper for the message types in this package's generated-style
// files. Real protoc-gen-go output renders String() via the full
// protoreflect machinery and an embedded file descriptor; this package
// carries only the gRPC service contracts it needs without committing a
// generated descriptor, so String() falls back to a plain Go representation.
package connectorpb

import "fmt"

func protoTextString(m any) string {
    return fmt.Sprintf("%+v", m)
}
