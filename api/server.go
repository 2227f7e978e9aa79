package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-arena-server/service/i"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var ErrNoSessionManager = errors.New("session manager is required")

type Server struct {
	sessions i.SessionManager

	UnimplementedSessionServer
}

func RegisterNewSessionServer(gsr grpc.ServiceRegistrar, sm i.SessionManager) error {
	if sm == nil {
		return ErrNoSessionManager
	}
	RegisterSessionServer(gsr, &Server{sessions: sm})
	return nil
}

func (s *Server) ListPlayers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	players := make([]any, 0)
	for _, p := range s.sessions.Players() {
		players = append(players, playerFields(p))
	}

	out, err := structpb.NewStruct(map[string]any{"players": players})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding players: %s", err)
	}
	return out, nil
}

func (s *Server) PlayerInfo(ctx context.Context, r *wrapperspb.Int32Value) (*structpb.Struct, error) {
	if r.GetValue() < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid player id %d", r.GetValue())
	}
	p, err := s.sessions.Player(int(r.GetValue()))
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	out, err := structpb.NewStruct(playerFields(p))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding player: %s", err)
	}
	return out, nil
}

func (s *Server) Kick(ctx context.Context, r *wrapperspb.Int32Value) (*emptypb.Empty, error) {
	if r.GetValue() < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid player id %d", r.GetValue())
	}
	if err := s.sessions.Kick(int(r.GetValue())); err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &emptypb.Empty{}, nil
}

func playerFields(p i.PlayerInfo) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"name":      p.Name,
		"score":     p.Score,
		"health":    p.Health,
		"died":      p.Died,
		"connected": p.Connected,
	}
}

// PlayerFromStruct reads back a player encoded by PlayerInfo or ListPlayers.
func PlayerFromStruct(s *structpb.Struct) (i.PlayerInfo, error) {
	f := s.GetFields()
	for _, key := range []string{"id", "name", "score", "health", "died", "connected"} {
		if _, ok := f[key]; !ok {
			return i.PlayerInfo{}, fmt.Errorf("player is missing %q", key)
		}
	}
	return i.PlayerInfo{
		ID:        int(f["id"].GetNumberValue()),
		Name:      f["name"].GetStringValue(),
		Score:     int(f["score"].GetNumberValue()),
		Health:    int(f["health"].GetNumberValue()),
		Died:      f["died"].GetBoolValue(),
		Connected: f["connected"].GetBoolValue(),
	}, nil
}

// PlayersFromStruct reads back a ListPlayers response.
func PlayersFromStruct(s *structpb.Struct) ([]i.PlayerInfo, error) {
	list := s.GetFields()["players"].GetListValue().GetValues()
	out := make([]i.PlayerInfo, 0, len(list))
	for _, v := range list {
		p, err := PlayerFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
