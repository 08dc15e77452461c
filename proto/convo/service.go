package convo

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ConversationService_SendMessage_FullMethodName            = "/convo.v1.ConversationService/SendMessage"
	ConversationService_FetchConversations_FullMethodName     = "/convo.v1.ConversationService/FetchConversations"
	ConversationService_MarkRead_FullMethodName               = "/convo.v1.ConversationService/MarkRead"
	ConversationService_SetTyping_FullMethodName              = "/convo.v1.ConversationService/SetTyping"
	ConversationService_GetThread_FullMethodName              = "/convo.v1.ConversationService/GetThread"
	ConversationService_SaveProfile_FullMethodName            = "/convo.v1.ConversationService/SaveProfile"
	ConversationService_GetProfile_FullMethodName             = "/convo.v1.ConversationService/GetProfile"
	ConversationService_ListMatches_FullMethodName            = "/convo.v1.ConversationService/ListMatches"
	ConversationService_SearchMessages_FullMethodName         = "/convo.v1.ConversationService/SearchMessages"
	ConversationService_SubscribeConversations_FullMethodName = "/convo.v1.ConversationService/SubscribeConversations"
	ConversationService_ObserveTyping_FullMethodName          = "/convo.v1.ConversationService/ObserveTyping"
)

// ConversationServiceClient is the client API for ConversationService.
// Every call is encoded with the convo-proto codec.
type ConversationServiceClient interface {
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	FetchConversations(ctx context.Context, in *FetchConversationsRequest, opts ...grpc.CallOption) (*ConversationList, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*Empty, error)
	SetTyping(ctx context.Context, in *SetTypingRequest, opts ...grpc.CallOption) (*Empty, error)
	GetThread(ctx context.Context, in *GetThreadRequest, opts ...grpc.CallOption) (*GetThreadResponse, error)
	SaveProfile(ctx context.Context, in *SaveProfileRequest, opts ...grpc.CallOption) (*Empty, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ProfileList, error)
	SearchMessages(ctx context.Context, in *SearchMessagesRequest, opts ...grpc.CallOption) (*MessageList, error)
	SubscribeConversations(ctx context.Context, in *SubscribeConversationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ConversationList], error)
	ObserveTyping(ctx context.Context, in *ObserveTypingRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TypingUpdate], error)
}

type conversationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConversationServiceClient(cc grpc.ClientConnInterface) ConversationServiceClient {
	return &conversationServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *conversationServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	out := new(SendMessageResponse)
	err := c.cc.Invoke(ctx, ConversationService_SendMessage_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) FetchConversations(ctx context.Context, in *FetchConversationsRequest, opts ...grpc.CallOption) (*ConversationList, error) {
	out := new(ConversationList)
	err := c.cc.Invoke(ctx, ConversationService_FetchConversations_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, ConversationService_MarkRead_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) SetTyping(ctx context.Context, in *SetTypingRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, ConversationService_SetTyping_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) GetThread(ctx context.Context, in *GetThreadRequest, opts ...grpc.CallOption) (*GetThreadResponse, error) {
	out := new(GetThreadResponse)
	err := c.cc.Invoke(ctx, ConversationService_GetThread_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) SaveProfile(ctx context.Context, in *SaveProfileRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, ConversationService_SaveProfile_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	out := new(Profile)
	err := c.cc.Invoke(ctx, ConversationService_GetProfile_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ProfileList, error) {
	out := new(ProfileList)
	err := c.cc.Invoke(ctx, ConversationService_ListMatches_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) SearchMessages(ctx context.Context, in *SearchMessagesRequest, opts ...grpc.CallOption) (*MessageList, error) {
	out := new(MessageList)
	err := c.cc.Invoke(ctx, ConversationService_SearchMessages_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *conversationServiceClient) SubscribeConversations(ctx context.Context, in *SubscribeConversationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ConversationList], error) {
	stream, err := c.cc.NewStream(ctx, &ConversationService_ServiceDesc.Streams[0], ConversationService_SubscribeConversations_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribeConversationsRequest, ConversationList]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ConversationService_SubscribeConversationsClient = grpc.ServerStreamingClient[ConversationList]

func (c *conversationServiceClient) ObserveTyping(ctx context.Context, in *ObserveTypingRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TypingUpdate], error) {
	stream, err := c.cc.NewStream(ctx, &ConversationService_ServiceDesc.Streams[1], ConversationService_ObserveTyping_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ObserveTypingRequest, TypingUpdate]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ConversationService_ObserveTypingClient = grpc.ServerStreamingClient[TypingUpdate]

// ConversationServiceServer is the server API for ConversationService.
type ConversationServiceServer interface {
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	FetchConversations(context.Context, *FetchConversationsRequest) (*ConversationList, error)
	MarkRead(context.Context, *MarkReadRequest) (*Empty, error)
	SetTyping(context.Context, *SetTypingRequest) (*Empty, error)
	GetThread(context.Context, *GetThreadRequest) (*GetThreadResponse, error)
	SaveProfile(context.Context, *SaveProfileRequest) (*Empty, error)
	GetProfile(context.Context, *GetProfileRequest) (*Profile, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ProfileList, error)
	SearchMessages(context.Context, *SearchMessagesRequest) (*MessageList, error)
	SubscribeConversations(*SubscribeConversationsRequest, grpc.ServerStreamingServer[ConversationList]) error
	ObserveTyping(*ObserveTypingRequest, grpc.ServerStreamingServer[TypingUpdate]) error
	mustEmbedUnimplementedConversationServiceServer()
}

// UnimplementedConversationServiceServer must be embedded to have forward compatible implementations.
type UnimplementedConversationServiceServer struct{}

func (UnimplementedConversationServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedConversationServiceServer) FetchConversations(context.Context, *FetchConversationsRequest) (*ConversationList, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FetchConversations not implemented")
}
func (UnimplementedConversationServiceServer) MarkRead(context.Context, *MarkReadRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkRead not implemented")
}
func (UnimplementedConversationServiceServer) SetTyping(context.Context, *SetTypingRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetTyping not implemented")
}
func (UnimplementedConversationServiceServer) GetThread(context.Context, *GetThreadRequest) (*GetThreadResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetThread not implemented")
}
func (UnimplementedConversationServiceServer) SaveProfile(context.Context, *SaveProfileRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveProfile not implemented")
}
func (UnimplementedConversationServiceServer) GetProfile(context.Context, *GetProfileRequest) (*Profile, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedConversationServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ProfileList, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMatches not implemented")
}
func (UnimplementedConversationServiceServer) SearchMessages(context.Context, *SearchMessagesRequest) (*MessageList, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchMessages not implemented")
}
func (UnimplementedConversationServiceServer) SubscribeConversations(*SubscribeConversationsRequest, grpc.ServerStreamingServer[ConversationList]) error {
	return status.Errorf(codes.Unimplemented, "method SubscribeConversations not implemented")
}
func (UnimplementedConversationServiceServer) ObserveTyping(*ObserveTypingRequest, grpc.ServerStreamingServer[TypingUpdate]) error {
	return status.Errorf(codes.Unimplemented, "method ObserveTyping not implemented")
}
func (UnimplementedConversationServiceServer) mustEmbedUnimplementedConversationServiceServer() {}

func RegisterConversationServiceServer(s grpc.ServiceRegistrar, srv ConversationServiceServer) {
	s.RegisterService(&ConversationService_ServiceDesc, srv)
}

func _ConversationService_SendMessage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_SendMessage_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_FetchConversations_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FetchConversationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).FetchConversations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_FetchConversations_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).FetchConversations(ctx, req.(*FetchConversationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_MarkRead_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MarkReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).MarkRead(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_MarkRead_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).MarkRead(ctx, req.(*MarkReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_SetTyping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetTypingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).SetTyping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_SetTyping_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).SetTyping(ctx, req.(*SetTypingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_GetThread_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetThreadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).GetThread(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_GetThread_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).GetThread(ctx, req.(*GetThreadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_SaveProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SaveProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).SaveProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_SaveProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).SaveProfile(ctx, req.(*SaveProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_GetProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_GetProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).GetProfile(ctx, req.(*GetProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_ListMatches_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListMatchesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).ListMatches(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_ListMatches_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).ListMatches(ctx, req.(*ListMatchesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_SearchMessages_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchMessagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).SearchMessages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ConversationService_SearchMessages_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConversationServiceServer).SearchMessages(ctx, req.(*SearchMessagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ConversationService_SubscribeConversations_Handler(srv any, stream grpc.ServerStream) error {
	m := new(SubscribeConversationsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ConversationServiceServer).SubscribeConversations(m, &grpc.GenericServerStream[SubscribeConversationsRequest, ConversationList]{ServerStream: stream})
}

type ConversationService_SubscribeConversationsServer = grpc.ServerStreamingServer[ConversationList]

func _ConversationService_ObserveTyping_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ObserveTypingRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ConversationServiceServer).ObserveTyping(m, &grpc.GenericServerStream[ObserveTypingRequest, TypingUpdate]{ServerStream: stream})
}

type ConversationService_ObserveTypingServer = grpc.ServerStreamingServer[TypingUpdate]

// ConversationService_ServiceDesc is the grpc.ServiceDesc for ConversationService.
var ConversationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "convo.v1.ConversationService",
	HandlerType: (*ConversationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendMessage",
			Handler:    _ConversationService_SendMessage_Handler,
		},
		{
			MethodName: "FetchConversations",
			Handler:    _ConversationService_FetchConversations_Handler,
		},
		{
			MethodName: "MarkRead",
			Handler:    _ConversationService_MarkRead_Handler,
		},
		{
			MethodName: "SetTyping",
			Handler:    _ConversationService_SetTyping_Handler,
		},
		{
			MethodName: "GetThread",
			Handler:    _ConversationService_GetThread_Handler,
		},
		{
			MethodName: "SaveProfile",
			Handler:    _ConversationService_SaveProfile_Handler,
		},
		{
			MethodName: "GetProfile",
			Handler:    _ConversationService_GetProfile_Handler,
		},
		{
			MethodName: "ListMatches",
			Handler:    _ConversationService_ListMatches_Handler,
		},
		{
			MethodName: "SearchMessages",
			Handler:    _ConversationService_SearchMessages_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeConversations",
			Handler:       _ConversationService_SubscribeConversations_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "ObserveTyping",
			Handler:       _ConversationService_ObserveTyping_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "convo/v1/conversation.proto",
}
