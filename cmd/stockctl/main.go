// Command stockctl queries the StockService gRPC API.
//
//	stockctl -addr localhost:9090 item <itemId>
//	stockctl -addr localhost:9090 check <itemId>=<qty> [<itemId>=<qty> ...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	invgrpc "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/grpc"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "StockService address")
	timeout := flag.Duration("timeout", 5*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: stockctl [flags] item <itemId> | check <itemId>=<qty>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*addr, *timeout, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "stockctl:", err)
		os.Exit(1)
	}
}

func run(addr string, timeout time.Duration, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("expected a command and at least one argument")
	}

	client, err := invgrpc.NewClient(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var resp any
	switch args[0] {
	case "item":
		resp, err = client.GetItem(ctx, args[1])
	case "check":
		lines, perr := parseLines(args[1:])
		if perr != nil {
			return perr
		}
		resp, err = client.CheckStock(ctx, lines)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func parseLines(args []string) ([]invgrpc.StockLine, error) {
	lines := make([]invgrpc.StockLine, 0, len(args))
	for _, a := range args {
		id, qty, ok := strings.Cut(a, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("bad line %q, want <itemId>=<qty>", a)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("bad quantity in %q: %w", a, err)
		}
		lines = append(lines, invgrpc.StockLine{ItemID: id, Quantity: n})
	}
	return lines, nil
}
