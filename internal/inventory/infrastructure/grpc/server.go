package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

// Server exposes read-only stock queries to other services.
type Server struct {
	log     *slog.Logger
	stock   *application.StockManager
	catalog *application.Service
}

func NewServer(log *slog.Logger, stock *application.StockManager, catalog *application.Service) *Server {
	return &Server{log: log, stock: stock, catalog: catalog}
}

func (s *Server) CheckStock(ctx context.Context, req *CheckStockRequest) (*CheckStockResponse, error) {
	if len(req.Items) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no items")
	}
	resp := &CheckStockResponse{Available: true}
	for _, line := range req.Items {
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, status.Errorf(codes.InvalidArgument, "invalid line %q x %d", line.ItemID, line.Quantity)
		}
		ok, err := s.stock.IsInStock(ctx, line.ItemID, line.Quantity)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		if !ok {
			resp.Available = false
			resp.Short = append(resp.Short, line.ItemID)
		}
	}
	return resp, nil
}

func (s *Server) GetItem(ctx context.Context, req *GetItemRequest) (*ItemResponse, error) {
	it, err := s.catalog.Get(ctx, req.ItemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return nil, status.Errorf(codes.NotFound, "item %s not found", req.ItemID)
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Category:      it.Category,
		Price:         it.Price.StringFixed(2),
		StockQuantity: it.StockQuantity,
		Unit:          it.Unit,
		IsActive:      it.IsActive,
	}, nil
}

func NewGRPCServer(log *slog.Logger, srv *Server) *grpc.Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary(log)))
	RegisterStockServiceServer(gs, srv)
	return gs
}

func Run(log *slog.Logger, addr string, srv *Server) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	gs := NewGRPCServer(log, srv)
	go func() {
		if err := gs.Serve(lis); err != nil {
			log.Error("grpc serve stopped", "err", err)
		}
	}()
	log.Info("grpc listening", "addr", addr)
	return gs, nil
}

func logUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("grpc call", "method", info.FullMethod, "code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds())
		return resp, err
	}
}
