package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client struct {
	conn *grpc.ClientConn
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) CheckStock(ctx context.Context, lines []StockLine) (*CheckStockResponse, error) {
	out := new(CheckStockResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/CheckStock", &CheckStockRequest{Items: lines}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetItem(ctx context.Context, itemID string) (*ItemResponse, error) {
	out := new(ItemResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/GetItem", &GetItemRequest{ItemID: itemID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
