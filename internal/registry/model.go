// internal/registry/model.go
// Package registry talks to the Consul-compatible service directory: it lists
// healthy instances of a named backend, attaches a caller-supplied resource to
// each (typically a gRPC channel), and keeps a consistent-hash ring of the
// result so request handlers can pick a sticky instance per key. It also owns
// this node's own self-registration and TTL heartbeat.
package registry

// ServiceInstance is one healthy entry returned by the directory for a given
// service name. It is immutable once constructed.
type ServiceInstance struct {
    ID      string
    Name    string
    Address string // host:port
}

// ServiceRecord pairs a directory instance with a caller-attached resource.
// Extra is produced by the Transformer passed to Client.Refresh — typically a
// *grpc.ClientConn created during refresh, so the request path never creates
// channels (the connection itself is established lazily on first use).
type ServiceRecord[T any] struct {
    Instance ServiceInstance
    Extra    T
}
