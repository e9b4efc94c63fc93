// internal/router/router.go
// Package router is the request state machine behind every session's recv
// half: it parses a typed WebSocket frame, maps it to the correct upstream
// backend by hash key, performs the RPC on the instance's cached channel,
// and funnels the typed response back onto the same session's outbound
// queue.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"google.golang.org/grpc"

	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/metrics"
	connectorpb "github.com/meshline/connector/internal/proto"
	"github.com/meshline/connector/internal/protocol"
	"github.com/meshline/connector/internal/registry"
	"github.com/meshline/connector/internal/session"
	"github.com/meshline/connector/internal/telemetry"
)

// Upstream logical service names, as registered in the directory.
const (
    UserService    = "user-service"
    ChannelService = "channel-service"
    MessageService = "message-service"
)

// ErrUpstreamUnaccessible reports that no healthy instance of a service is
// currently in its registry ring.  Request-level: logged, session continues.
var ErrUpstreamUnaccessible = errors.New("router: no healthy upstream instance")

// Router holds the three upstream registries and implements session.Handler.
type Router struct {
    users    registry.Store[*grpc.ClientConn]
    channels registry.Store[*grpc.ClientConn]
    messages registry.Store[*grpc.ClientConn]
}

// New returns a Router over the three upstream stores.
func New(users, channels, messages registry.Store[*grpc.ClientConn]) *Router {
    return &Router{users: users, channels: channels, messages: messages}
}

// HandleFrame implements session.Handler.  Control frames are resolved in
// place; text frames are parsed and dispatched to the matching upstream.
// Per-request failures (no instance, RPC error, closed queue) are logged and
// keep the session alive.  Malformed text, binary and unknown frames break it
// with an error, a Close frame breaks it cleanly, and a Ping whose Pong cannot
// be enqueued breaks it with an error.
func (r *Router) HandleFrame(ctx context.Context, userID string, q *session.Queue, frameType int, payload []byte) (session.Flow, error) {
    switch frameType {
    case websocket.PingMessage:
        if err := q.Send(ctx, protocol.Pong{}); err != nil {
            return session.FlowBreak, fmt.Errorf("router: failed to handle ping for user %s: %w", userID, err)
        }
        return session.FlowContinue, nil
    case websocket.PongMessage:
        return session.FlowContinue, nil
    case websocket.CloseMessage:
        return session.FlowBreak, nil
    case websocket.BinaryMessage:
        return session.FlowBreak, errors.New("router: binary messages are not supported")
    case websocket.TextMessage:
        // Fall through to the dispatch table below.
    default:
        return session.FlowBreak, fmt.Errorf("router: unsupported frame type %d", frameType)
    }

    req, err := protocol.ParseRequest(payload)
    if err != nil {
        return session.FlowBreak, fmt.Errorf("router: failed to parse request message: %w", err)
    }

    val, err := r.dispatch(ctx, req)
    if err != nil {
        // The user can retry once the next refresh restores the pool or the
        // backend recovers.
        logging.Sugar().Errorw("upstream request failed",
            "user_id", userID, "type", protocol.RequestTag(req), "err", err)
        return session.FlowContinue, nil
    }

    rsp := val.Data
    if err := q.Send(ctx, rsp); err != nil {
        // Queue closed: the session is already tearing down.
        logging.Sugar().Errorw("failed to enqueue response",
            "user_id", userID, "type", rsp.Tag(), "err", err)
    }
    return session.FlowContinue, nil
}

// dispatch picks the upstream instance for req's hash key and issues the
// RPC, returning the enveloped ServiceMessage to enqueue.
func (r *Router) dispatch(ctx context.Context, req protocol.ReqMessage) (protocol.ServiceValue[protocol.ServiceMessage], error) {
    switch v := req.(type) {
    case protocol.RegisterUserReq:
        return callUpstream(ctx, r.users, UserService, "RegisterUser", v.Username,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewUserServiceClient(conn).RegisterUser(ctx, &connectorpb.RegisterUserRequest{
                    Username: v.Username,
                    Password: v.Password,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.RegisterUserRsp{UserID: reply.UserId}, nil
            })

    case protocol.LoginUserReq:
        return callUpstream(ctx, r.users, UserService, "LoginUser", v.Username,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewUserServiceClient(conn).LoginUser(ctx, &connectorpb.LoginUserRequest{
                    Username: v.Username,
                    Password: v.Password,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.LoginUserRsp{Token: reply.Token}, nil
            })

    case protocol.GetUserInfoReq:
        return callUpstream(ctx, r.users, UserService, "GetUserInfo", v.UserID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewUserServiceClient(conn).GetUserInfo(ctx, &connectorpb.GetUserInfoRequest{
                    UserId: v.UserID,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.GetUserInfoRsp{
                    UserID:    reply.UserId,
                    Username:  reply.Username,
                    CreatedAt: reply.CreatedAt,
                }, nil
            })

    case protocol.CreateChannelReq:
        return callUpstream(ctx, r.channels, ChannelService, "CreateChannel", v.CreatorID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewChannelServiceClient(conn).CreateChannel(ctx, &connectorpb.CreateChannelRequest{
                    Name:      v.Name,
                    CreatorId: v.CreatorID,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.CreateChannelRsp{
                    ChannelID:   reply.ChannelId,
                    ChannelName: reply.ChannelName,
                }, nil
            })

    case protocol.ListChannelDetailsReq:
        return callUpstream(ctx, r.channels, ChannelService, "ListChannelDetails", v.UserID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewChannelServiceClient(conn).ListChannelDetails(ctx, &connectorpb.ListChannelDetailsRequest{
                    UserId: v.UserID,
                })
                if err != nil {
                    return nil, err
                }
                channels := make([]protocol.ChannelDetail, 0, len(reply.Channels))
                for _, ch := range reply.Channels {
                    channels = append(channels, protocol.ChannelDetail{
                        ChannelID:   ch.ChannelId,
                        ChannelName: ch.ChannelName,
                    })
                }
                return protocol.ListChannelDetailsRsp{Channels: channels}, nil
            })

    case protocol.JoinChannelReq:
        return callUpstream(ctx, r.channels, ChannelService, "JoinChannel", v.UserID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewChannelServiceClient(conn).JoinChannel(ctx, &connectorpb.JoinChannelRequest{
                    ChannelId: v.ChannelID,
                    UserId:    v.UserID,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.JoinChannelRsp{
                    ChannelID: reply.ChannelId,
                    UserID:    reply.UserId,
                }, nil
            })

    case protocol.CreateMessageReq:
        return callUpstream(ctx, r.messages, MessageService, "CreateMessage", v.UserID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewMessageServiceClient(conn).CreateMessage(ctx, &connectorpb.CreateMessageRequest{
                    ChannelId: v.ChannelID,
                    UserId:    v.UserID,
                    Content:   v.Content,
                })
                if err != nil {
                    return nil, err
                }
                return protocol.CreateMessageRsp{MessageID: reply.MessageId}, nil
            })

    case protocol.ListMessagesReq:
        return callUpstream(ctx, r.messages, MessageService, "ListChannelMessages", v.ChannelID,
            func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error) {
                reply, err := connectorpb.NewMessageServiceClient(conn).ListChannelMessages(ctx, &connectorpb.ListChannelMessagesRequest{
                    ChannelId:  v.ChannelID,
                    Limit:      v.Limit,
                    LatestTime: v.LatestTime,
                })
                if err != nil {
                    return nil, err
                }
                messages := make([]protocol.MessageDetail, 0, len(reply.Messages))
                for _, msg := range reply.Messages {
                    messages = append(messages, protocol.MessageDetail{
                        MessageID: msg.MessageId,
                        UserID:    msg.UserId,
                        ChannelID: msg.ChannelId,
                        Content:   msg.Content,
                        CreatedAt: msg.CreatedAt,
                    })
                }
                return protocol.ListMessagesRsp{Messages: messages}, nil
            })
    }
    return protocol.ServiceValue[protocol.ServiceMessage]{}, fmt.Errorf("router: no dispatch entry for %T", req)
}

// callUpstream resolves key against store's ring and runs call on the picked
// instance's shared channel, instrumented with a client span and latency
// metrics.  A successful reply is wrapped in the standard value envelope.
func callUpstream(
    ctx context.Context,
    store registry.Store[*grpc.ClientConn],
    service, method, key string,
    call func(ctx context.Context, conn *grpc.ClientConn) (protocol.ServiceMessage, error),
) (protocol.ServiceValue[protocol.ServiceMessage], error) {
    var zero protocol.ServiceValue[protocol.ServiceMessage]

    rec, ok := store.Pick(key)
    if !ok {
        metrics.UpstreamErrorsTotal.WithLabelValues(service, "unaccessible").Inc()
        return zero, fmt.Errorf("%w: %s", ErrUpstreamUnaccessible, service)
    }

    ctx, span := telemetry.StartUpstreamCall(ctx, service, method, rec.Instance.ID)
    start := time.Now()
    rsp, err := call(ctx, rec.Extra)
    metrics.ObserveUpstream(service, method, start, err)
    telemetry.End(span, err)
    if err != nil {
        return zero, fmt.Errorf("router: %s %s on %s: %w", service, method, rec.Instance.Address, err)
    }
    return protocol.OK(rsp), nil
}
