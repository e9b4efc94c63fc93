// internal/dispatch/server.go
// Package dispatch implements the inbound gRPC endpoint a backend dispatch
// source calls to push a message at a connected user.  Routing is strictly
// node-local: if the target user is attached to a different connector node,
// this node reports NotFound and a router elsewhere is responsible for
// addressing the right one.
package dispatch

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/metrics"
	connectorpb "github.com/meshline/connector/internal/proto"
	"github.com/meshline/connector/internal/protocol"
	"github.com/meshline/connector/internal/session"
	"github.com/meshline/connector/internal/telemetry"
)

// Server implements connectorpb.DispatchServiceServer over the node's
// session directory.
type Server struct {
    connectorpb.UnimplementedDispatchServiceServer

    directory *session.Directory
}

// NewServer returns a Server routing into directory.
func NewServer(directory *session.Directory) *Server {
    return &Server{directory: directory}
}

// DispatchMessage looks up the target user's outbound queue and enqueues a
// push envelope.  The enqueue blocks while the queue is full, so a slow
// client surfaces to the dispatch source as call latency.
func (s *Server) DispatchMessage(ctx context.Context, req *connectorpb.DispatchMessageRequest) (*connectorpb.DispatchMessageResponse, error) {
    ctx, span := telemetry.StartDispatch(ctx, req.GetTargetUserId())
    var err error
    defer func() { telemetry.End(span, err) }()

    q, online := s.directory.Lookup(req.GetTargetUserId())
    if !online {
        metrics.DispatchTotal.WithLabelValues("not_found").Inc()
        err = status.Error(codes.NotFound, "target user is not online")
        return nil, err
    }

    msg := protocol.DispatchMessage{
        MessageID: req.MessageId,
        UserID:    req.UserId,
        ChannelID: req.ChannelId,
        Content:   req.Content,
        Timestamp: req.CreatedAt,
    }
    if sendErr := q.Send(ctx, msg); sendErr != nil {
        logging.Sugar().Warnw("failed to enqueue dispatch",
            "target_user_id", req.TargetUserId, "message_id", req.MessageId, "err", sendErr)
        metrics.DispatchTotal.WithLabelValues("queue_closed").Inc()
        err = status.Errorf(codes.Internal, "failed to send message to user queue: %v", sendErr)
        return nil, err
    }

    metrics.DispatchTotal.WithLabelValues("enqueued").Inc()
    return &connectorpb.DispatchMessageResponse{Successful: true}, nil
}
