// internal/protocol/messages.go
// Package protocol defines the WebSocket wire frames and the internal
// ServiceMessage union that flows through a
// session's outbound queue. Every ServiceMessage variant maps 1:1 to an
// outbound wire frame; RequestRouter (internal/router) is the only consumer
// that needs to know both sides.
package protocol

// Request tags, exactly as they appear on the wire.
const (
    TagRegisterUser        = "register_user"
    TagLoginUser            = "login_user"
    TagGetUserInfo          = "get_user_info"
    TagCreateChannel        = "create_channel"
    TagListChannelDetails   = "list_channel_details"
    TagJoinChannel          = "join_channel"
    TagCreateMessage        = "create_message"
    TagListMessages         = "list_messages"
    TagDispatchMessage      = "dispatch_message" // response-only
)

// Request payloads ----------------------------------------------------------

type RegisterUserReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type LoginUserReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type GetUserInfoReq struct {
    UserID string `json:"user_id"`
}

type CreateChannelReq struct {
    Name      string `json:"name"`
    CreatorID string `json:"creator_id"`
}

type ListChannelDetailsReq struct {
    UserID string `json:"user_id"`
}

type JoinChannelReq struct {
    ChannelID string `json:"channel_id"`
    UserID    string `json:"user_id"`
}

type CreateMessageReq struct {
    ChannelID string `json:"channel_id"`
    UserID    string `json:"user_id"`
    Content   string `json:"content"`
}

type ListMessagesReq struct {
    ChannelID  string `json:"channel_id"`
    Limit      int32  `json:"limit"`
    LatestTime int64  `json:"latest_time"`
}

// ReqMessage is implemented by every inbound request payload type. The
// interface carries no behavior of its own; it exists so handle-frame
// dispatch tables can be written as a single type switch in internal/router.
type ReqMessage interface {
    reqTag() string
}

// RequestTag returns the wire "type" tag of an inbound request.
func RequestTag(m ReqMessage) string { return m.reqTag() }

func (RegisterUserReq) reqTag() string      { return TagRegisterUser }
func (LoginUserReq) reqTag() string          { return TagLoginUser }
func (GetUserInfoReq) reqTag() string        { return TagGetUserInfo }
func (CreateChannelReq) reqTag() string      { return TagCreateChannel }
func (ListChannelDetailsReq) reqTag() string { return TagListChannelDetails }
func (JoinChannelReq) reqTag() string        { return TagJoinChannel }
func (CreateMessageReq) reqTag() string      { return TagCreateMessage }
func (ListMessagesReq) reqTag() string       { return TagListMessages }

// Response / ServiceMessage payloads -----------------------------------------

// ChannelDetail is one entry of ListChannelDetailsRsp.Channels.
type ChannelDetail struct {
    ChannelID   string `json:"channel_id"`
    ChannelName string `json:"channel_name"`
}

// MessageDetail is one entry of ListMessagesRsp.Messages.
type MessageDetail struct {
    MessageID string `json:"message_id"`
    UserID    string `json:"user_id"`
    ChannelID string `json:"channel_id"`
    Content   string `json:"content"`
    CreatedAt int64  `json:"created_at"`
}

// Pong is sent in reply to an inbound Ping control frame.
type Pong struct{}

// DispatchMessage is the push envelope delivered by DispatchServer to a
// target user's outbound queue.
type DispatchMessage struct {
    MessageID string `json:"message_id"`
    UserID    string `json:"user_id"`
    ChannelID string `json:"channel_id"`
    Content   string `json:"content"`
    Timestamp int64  `json:"timestamp"`
}

type RegisterUserRsp struct {
    UserID string `json:"user_id"`
}

type LoginUserRsp struct {
    Token string `json:"token"`
}

type GetUserInfoRsp struct {
    UserID    string `json:"user_id"`
    Username  string `json:"username"`
    CreatedAt int64  `json:"created_at"`
}

type CreateChannelRsp struct {
    ChannelID   string `json:"channel_id"`
    ChannelName string `json:"channel_name"`
}

type ListChannelDetailsRsp struct {
    Channels []ChannelDetail `json:"channels"`
}

type JoinChannelRsp struct {
    ChannelID string `json:"channel_id"`
    UserID    string `json:"user_id"`
}

type CreateMessageRsp struct {
    MessageID string `json:"message_id"`
}

type ListMessagesRsp struct {
    Messages []MessageDetail `json:"messages"`
}

// ServiceMessage is implemented by every value that can occupy a session's
// outbound queue. Tag returns the wire envelope's "type" field.
type ServiceMessage interface {
    Tag() string
}

func (Pong) Tag() string                    { return "pong" }
func (DispatchMessage) Tag() string          { return TagDispatchMessage }
func (RegisterUserRsp) Tag() string          { return TagRegisterUser }
func (LoginUserRsp) Tag() string             { return TagLoginUser }
func (GetUserInfoRsp) Tag() string           { return TagGetUserInfo }
func (CreateChannelRsp) Tag() string         { return TagCreateChannel }
func (ListChannelDetailsRsp) Tag() string    { return TagListChannelDetails }
func (JoinChannelRsp) Tag() string           { return TagJoinChannel }
func (CreateMessageRsp) Tag() string         { return TagCreateMessage }
func (ListMessagesRsp) Tag() string          { return TagListMessages }
