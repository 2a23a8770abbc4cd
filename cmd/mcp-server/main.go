package main

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/usagi-tienda/storefront-go/internal/logging"
	"github.com/usagi-tienda/storefront-go/pkg/storefront"
)

func main() {
	ctx := context.Background()
	cfg := storefront.LoadConfig()

	// stdout carries the MCP stream, so logs go to stderr
	logger := logging.New(cfg.LogLevel, os.Stderr)

	// Initialize storefront client
	client, err := storefront.NewClientFromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize storefront client: %v", err)
	}
	defer client.Close()

	// Authenticate when credentials are provided; guests can still browse and buy
	if token := os.Getenv("STOREFRONT_TOKEN"); token != "" {
		if err := client.SetToken(ctx, token); err != nil {
			log.Fatalf("failed to set token: %v", err)
		}
	} else if email := os.Getenv("STOREFRONT_EMAIL"); email != "" {
		if _, err := client.Auth.Login(ctx, email, os.Getenv("STOREFRONT_PASSWORD")); err != nil {
			log.Fatalf("failed to login: %v", err)
		}
	}

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "storefront",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *storefront.Client) {
	// Create tools instance with client
	tools := &storefrontTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_products",
		Description: "List the catalog, optionally filtered by category. Returns product id, name, price, stock, brand, category and image URL. Served from cache when the backend is unavailable.",
	}, tools.ListProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_cart",
		Description: "Show the cart lines and total. Lines marked guest are kept locally because the cart API is unavailable.",
	}, tools.ViewCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_cart",
		Description: "Add a quantity of a product to the cart, merging with an existing line for the same product.",
	}, tools.AddToCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "checkout",
		Description: "Turn the cart into an order and empty the cart. When the order API is missing the order is recorded locally.",
	}, tools.Checkout)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "order_history",
		Description: "List the current user's orders, remote and local, newest first.",
	}, tools.OrderHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_order_status",
		Description: "Change the status of an order. Requires the admin role.",
	}, tools.SetOrderStatus)
}
