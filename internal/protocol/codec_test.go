package protocol

import (
	"encoding/json"
	"testing"
)

func TestParseRequestRoundTrip(t *testing.T) {
    cases := []struct {
        name  string
        frame string
        want  ReqMessage
    }{
        {"register", `{"type":"register_user","data":{"username":"alice","password":"p"}}`, RegisterUserReq{Username: "alice", Password: "p"}},
        {"login", `{"type":"login_user","data":{"username":"alice","password":"p"}}`, LoginUserReq{Username: "alice", Password: "p"}},
        {"get_user_info", `{"type":"get_user_info","data":{"user_id":"u1"}}`, GetUserInfoReq{UserID: "u1"}},
        {"create_channel", `{"type":"create_channel","data":{"name":"general","creator_id":"u1"}}`, CreateChannelReq{Name: "general", CreatorID: "u1"}},
        {"list_channel_details", `{"type":"list_channel_details","data":{"user_id":"u1"}}`, ListChannelDetailsReq{UserID: "u1"}},
        {"join_channel", `{"type":"join_channel","data":{"channel_id":"c1","user_id":"u1"}}`, JoinChannelReq{ChannelID: "c1", UserID: "u1"}},
        {"create_message", `{"type":"create_message","data":{"channel_id":"c1","user_id":"u1","content":"hi"}}`, CreateMessageReq{ChannelID: "c1", UserID: "u1", Content: "hi"}},
        {"list_messages", `{"type":"list_messages","data":{"channel_id":"c1","limit":10,"latest_time":123}}`, ListMessagesReq{ChannelID: "c1", Limit: 10, LatestTime: 123}},
    }

    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got, err := ParseRequest([]byte(tc.frame))
            if err != nil {
                t.Fatalf("parse: %v", err)
            }
            if got != tc.want {
                t.Fatalf("got %#v, want %#v", got, tc.want)
            }
        })
    }
}

func TestParseRequestUnknownType(t *testing.T) {
    if _, err := ParseRequest([]byte(`{"type":"nonsense","data":{}}`)); err == nil {
        t.Fatal("expected error for unknown type")
    }
}

func TestParseRequestMalformedEnvelope(t *testing.T) {
    if _, err := ParseRequest([]byte(`not json`)); err == nil {
        t.Fatal("expected error for malformed envelope")
    }
}

func TestEncodeResponseEnvelopeShape(t *testing.T) {
    b, err := EncodeResponse(RegisterUserRsp{UserID: "u1"})
    if err != nil {
        t.Fatalf("encode: %v", err)
    }
    var env envelope
    if err := json.Unmarshal(b, &env); err != nil {
        t.Fatalf("decode produced envelope: %v", err)
    }
    if env.Type != "register_user" {
        t.Fatalf("got type %q, want register_user", env.Type)
    }
    var data RegisterUserRsp
    if err := json.Unmarshal(env.Data, &data); err != nil {
        t.Fatalf("decode data: %v", err)
    }
    if data.UserID != "u1" {
        t.Fatalf("got user_id %q, want u1", data.UserID)
    }
}

func TestDispatchMessageTagIsDistinctFromRequestTags(t *testing.T) {
    b, err := EncodeResponse(DispatchMessage{MessageID: "m1", UserID: "u2", ChannelID: "c1", Content: "hi", Timestamp: 123})
    if err != nil {
        t.Fatalf("encode: %v", err)
    }
    var env envelope
    _ = json.Unmarshal(b, &env)
    if env.Type != "dispatch_message" {
        t.Fatalf("got type %q, want dispatch_message", env.Type)
    }
}

// serialize . parse . serialize == serialize for canonical inputs.
func TestSerializeParseSerializeRoundTrip(t *testing.T) {
    original := CreateMessageReq{ChannelID: "c1", UserID: "u1", Content: "hello"}
    env1, _ := json.Marshal(envelope{Type: original.reqTag(), Data: mustMarshal(t, original)})

    parsed, err := ParseRequest(env1)
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    got := parsed.(CreateMessageReq)
    env2, _ := json.Marshal(envelope{Type: got.reqTag(), Data: mustMarshal(t, got)})

    if string(env1) != string(env2) {
        t.Fatalf("round trip mismatch:\n%s\nvs\n%s", env1, env2)
    }
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
    t.Helper()
    b, err := json.Marshal(v)
    if err != nil {
        t.Fatalf("marshal: %v", err)
    }
    return b
}
