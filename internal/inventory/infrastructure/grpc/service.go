package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "grocery.inventory.v1.StockService"

type StockLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type CheckStockRequest struct {
	Items []StockLine `json:"items"`
}

type CheckStockResponse struct {
	Available bool `json:"available"`
	// Short lists the item ids that cannot be served.
	Short []string `json:"short,omitempty"`
}

type GetItemRequest struct {
	ItemID string `json:"itemId"`
}

type ItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Unit          string `json:"unit"`
	IsActive      bool   `json:"isActive"`
}

type StockServiceServer interface {
	CheckStock(ctx context.Context, req *CheckStockRequest) (*CheckStockResponse, error)
	GetItem(ctx context.Context, req *GetItemRequest) (*ItemResponse, error)
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&stockServiceDesc, srv)
}

var stockServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckStock", Handler: checkStockHandler},
		{MethodName: "GetItem", Handler: getItemHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func checkStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckStockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).CheckStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/CheckStock"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).CheckStock(ctx, req.(*CheckStockRequest))
	})
}

func getItemHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).GetItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetItem"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).GetItem(ctx, req.(*GetItemRequest))
	})
}
