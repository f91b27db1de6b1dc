package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "zazen"
	serviceName       = "zazen.chime.v1.ChimePlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodPlay        = "/" + serviceName + "/Play"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ZAZEN_CHIME",
	MagicCookieValue: "zazen",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type PlayRequest struct {
	Cue string `json:"cue"`
}

type ChimePluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Play(ctx context.Context, in *PlayRequest) (*Empty, error)
}

type ChimePluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Play(ctx context.Context, in *PlayRequest) error
}

type chimePluginClient struct {
	conn *grpc.ClientConn
}

func NewChimePluginClient(conn *grpc.ClientConn) ChimePluginClient {
	return &chimePluginClient{conn: conn}
}

func (c *chimePluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chimePluginClient) Play(ctx context.Context, in *PlayRequest) error {
	out := &Empty{}
	return c.conn.Invoke(ctx, methodPlay, in, out, grpc.CallContentSubtype(jsonCodecName))
}

func RegisterChimePluginServer(server grpc.ServiceRegistrar, impl ChimePluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ChimePluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Play",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &PlayRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Play(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPlay}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*PlayRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Play(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/chime-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ChimePluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterChimePluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewChimePluginClient(conn), nil
}

func PluginMap(impl ChimePluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
