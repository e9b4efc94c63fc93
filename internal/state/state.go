// internal/state/state.go
// Package state bundles the process-wide collaborators every request handler
// and background task shares: configuration, the cache client, the three
// upstream registries, and the live-session directory.  One AppState is
// built at startup and shared by pointer; none of its fields are replaced
// afterwards.
package state

import (
	"google.golang.org/grpc"

	"github.com/meshline/connector/internal/cache"
	"github.com/meshline/connector/internal/config"
	"github.com/meshline/connector/internal/registry"
	"github.com/meshline/connector/internal/session"
)

// AppState is immutable after New returns.
type AppState struct {
    cfg       config.AppConfig
    cache     *cache.Cache
    users     registry.Store[*grpc.ClientConn]
    channels  registry.Store[*grpc.ClientConn]
    messages  registry.Store[*grpc.ClientConn]
    directory *session.Directory
}

// New assembles an AppState from already-initialized collaborators.
func New(
    cfg config.AppConfig,
    c *cache.Cache,
    users, channels, messages registry.Store[*grpc.ClientConn],
) *AppState {
    return &AppState{
        cfg:       cfg,
        cache:     c,
        users:     users,
        channels:  channels,
        messages:  messages,
        directory: session.NewDirectory(),
    }
}

func (s *AppState) Config() config.AppConfig { return s.cfg }

func (s *AppState) Cache() *cache.Cache { return s.cache }

func (s *AppState) UserRegistry() registry.Store[*grpc.ClientConn] { return s.users }

func (s *AppState) ChannelRegistry() registry.Store[*grpc.ClientConn] { return s.channels }

func (s *AppState) MessageRegistry() registry.Store[*grpc.ClientConn] { return s.messages }

func (s *AppState) Directory() *session.Directory { return s.directory }
