// internal/gateway/server.go
// gRPC side of the supervisor: the dispatch endpoint a backend push source
// calls to reach a connected user.  The server is intentionally lightweight;
// routing is delegated to internal/dispatch and session state to
// internal/session.
package gateway

import (
	"google.golang.org/grpc"

	"github.com/meshline/connector/internal/dispatch"
	connectorpb "github.com/meshline/connector/internal/proto"
	"github.com/meshline/connector/internal/state"
)

// newGRPCServer builds the gRPC server with the dispatch service mounted
// over the node's session directory.
func newGRPCServer(st *state.AppState) *grpc.Server {
    srv := grpc.NewServer()
    connectorpb.RegisterDispatchServiceServer(srv, dispatch.NewServer(st.Directory()))
    return srv
}
