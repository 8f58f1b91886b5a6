// ABOUTME: MCP server subcommand
// ABOUTME: Exposes negotiation tools over stdio for assistant integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/handlers"
	"github.com/harperreed/haggle/models"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(client *api.Client, database *sql.DB, viewer models.Party) error {
	log.Println("Starting haggle MCP server...")

	negotiationHandlers := handlers.NewNegotiationHandlers(client, database, viewer)
	activityHandlers := handlers.NewActivityHandlers(database)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "haggle",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_negotiation",
		Description: "Fetch the current state of a negotiation thread from the marketplace",
	}, negotiationHandlers.GetNegotiation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "respond_to_offer",
		Description: "Accept, reject, or counter the active offer on a negotiation thread",
	}, negotiationHandlers.RespondToOffer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_inspection_response",
		Description: "Answer an inspection date proposal, optionally counter-proposing a different slot",
	}, negotiationHandlers.SubmitInspectionResponse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_property",
		Description: "Fetch a property listing by ID",
	}, negotiationHandlers.GetProperty)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activity",
		Description: "List locally logged actions for a negotiation thread",
	}, activityHandlers.ListActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_cached_negotiations",
		Description: "List negotiation threads cached on this machine",
	}, activityHandlers.ListCachedNegotiations)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
