package api

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/beka-birhanu/vinom-arena-server/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var errNoPlayer = errors.New("unknown player")

type fakeSessions struct {
	players []i.PlayerInfo
	kicked  []int
}

func (f *fakeSessions) Players() []i.PlayerInfo { return f.players }

func (f *fakeSessions) Player(id int) (i.PlayerInfo, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return i.PlayerInfo{}, errNoPlayer
}

func (f *fakeSessions) Kick(id int) error {
	if _, err := f.Player(id); err != nil {
		return err
	}
	f.kicked = append(f.kicked, id)
	return nil
}

func newClient(t *testing.T, sm i.SessionManager) SessionClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	require.NoError(t, RegisterNewSessionServer(srv, sm))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewSessionClient(conn)
}

func TestRegisterRequiresSessionManager(t *testing.T) {
	assert.ErrorIs(t, RegisterNewSessionServer(grpc.NewServer(), nil), ErrNoSessionManager)
}

func TestListPlayers(t *testing.T) {
	sm := &fakeSessions{players: []i.PlayerInfo{
		{ID: 0, Name: "alice", Score: 2, Health: 3, Connected: true},
		{ID: 1, Name: "bob", Health: 0, Died: true, Connected: true},
	}}
	c := newClient(t, sm)

	resp, err := c.ListPlayers(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	players, err := PlayersFromStruct(resp)
	require.NoError(t, err)
	assert.Equal(t, sm.players, players)
}

func TestListPlayersEmpty(t *testing.T) {
	c := newClient(t, &fakeSessions{})

	resp, err := c.ListPlayers(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	players, err := PlayersFromStruct(resp)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestPlayerInfo(t *testing.T) {
	sm := &fakeSessions{players: []i.PlayerInfo{{ID: 4, Name: "carol", Score: 7, Health: 1, Connected: true}}}
	c := newClient(t, sm)

	resp, err := c.PlayerInfo(context.Background(), wrapperspb.Int32(4))
	require.NoError(t, err)
	p, err := PlayerFromStruct(resp)
	require.NoError(t, err)
	assert.Equal(t, sm.players[0], p)

	tests := []struct {
		id   int32
		code codes.Code
	}{
		{id: 5, code: codes.NotFound},
		{id: -1, code: codes.InvalidArgument},
	}
	for _, tt := range tests {
		_, err := c.PlayerInfo(context.Background(), wrapperspb.Int32(tt.id))
		assert.Equal(t, tt.code, status.Code(err))
	}
}

func TestKick(t *testing.T) {
	sm := &fakeSessions{players: []i.PlayerInfo{{ID: 2, Name: "dave"}}}
	c := newClient(t, sm)

	_, err := c.Kick(context.Background(), wrapperspb.Int32(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sm.kicked)

	_, err = c.Kick(context.Background(), wrapperspb.Int32(3))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPlayerFromStructRejectsPartial(t *testing.T) {
	_, err := PlayerFromStruct(nil)
	assert.Error(t, err)
}
