// internal/protocol/codec.go
package protocol

import (
	"encoding/json"
	"fmt"
)

// envelope is the on-the-wire JSON shape used in both directions:
// {"type": "<tag>", "data": <payload>}.
type envelope struct {
    Type string          `json:"type"`
    Data json.RawMessage `json:"data"`
}

// ParseRequest decodes a text frame into the concrete ReqMessage its "type"
// tag names. An unrecognized tag or malformed envelope/payload is a parse
// failure, which ends the session at the router level.
func ParseRequest(frame []byte) (ReqMessage, error) {
    var env envelope
    if err := json.Unmarshal(frame, &env); err != nil {
        return nil, fmt.Errorf("protocol: decode envelope: %w", err)
    }

    var msg ReqMessage
    switch env.Type {
    case TagRegisterUser:
        var v RegisterUserReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagLoginUser:
        var v LoginUserReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagGetUserInfo:
        var v GetUserInfoReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagCreateChannel:
        var v CreateChannelReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagListChannelDetails:
        var v ListChannelDetailsReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagJoinChannel:
        var v JoinChannelReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagCreateMessage:
        var v CreateMessageReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    case TagListMessages:
        var v ListMessagesReq
        if err := json.Unmarshal(env.Data, &v); err != nil {
            return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
        }
        msg = v
    default:
        return nil, fmt.Errorf("protocol: unknown request type %q", env.Type)
    }
    return msg, nil
}

// EncodeResponse serializes any ServiceMessage into its wire envelope.
func EncodeResponse(msg ServiceMessage) ([]byte, error) {
    data, err := json.Marshal(msg)
    if err != nil {
        return nil, fmt.Errorf("protocol: encode %s: %w", msg.Tag(), err)
    }
    return json.Marshal(envelope{Type: msg.Tag(), Data: data})
}
