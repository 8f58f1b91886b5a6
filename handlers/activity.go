// ABOUTME: Activity and cache MCP tool handlers
// ABOUTME: Implements list_activity and list_cached_negotiations over the local database
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/haggle/db"
)

type ActivityHandlers struct {
	db *sql.DB
}

func NewActivityHandlers(database *sql.DB) *ActivityHandlers {
	return &ActivityHandlers{db: database}
}

type ListActivityInput struct {
	NegotiationID string `json:"negotiation_id" jsonschema:"Negotiation thread ID (required)"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum entries to return (default 50)"`
}

type ActivityEntry struct {
	ID            string `json:"id"`
	NegotiationID string `json:"negotiation_id"`
	Actor         string `json:"actor"`
	Verb          string `json:"verb"`
	Detail        string `json:"detail,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type ListActivityOutput struct {
	Entries []ActivityEntry `json:"entries"`
}

func (h *ActivityHandlers) ListActivity(_ context.Context, request *mcp.CallToolRequest, input ListActivityInput) (*mcp.CallToolResult, ListActivityOutput, error) {
	if input.NegotiationID == "" {
		return nil, ListActivityOutput{}, fmt.Errorf("negotiation_id is required")
	}

	activities, err := db.ListActivity(h.db, input.NegotiationID, input.Limit)
	if err != nil {
		return nil, ListActivityOutput{}, fmt.Errorf("failed to list activity: %w", err)
	}

	out := ListActivityOutput{Entries: make([]ActivityEntry, 0, len(activities))}
	for _, a := range activities {
		out.Entries = append(out.Entries, ActivityEntry{
			ID:            a.ID,
			NegotiationID: a.NegotiationID,
			Actor:         string(a.Actor),
			Verb:          string(a.Verb),
			Detail:        a.Detail,
			CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		})
	}

	return nil, out, nil
}

type ListCachedInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum threads to return (default 20)"`
}

type CachedNegotiation struct {
	NegotiationOutput
	FetchedAt string `json:"fetched_at"`
}

type ListCachedOutput struct {
	Negotiations []CachedNegotiation `json:"negotiations"`
}

func (h *ActivityHandlers) ListCachedNegotiations(_ context.Context, request *mcp.CallToolRequest, input ListCachedInput) (*mcp.CallToolResult, ListCachedOutput, error) {
	snaps, err := db.ListSnapshots(h.db, input.Limit)
	if err != nil {
		return nil, ListCachedOutput{}, fmt.Errorf("failed to list cached negotiations: %w", err)
	}

	out := ListCachedOutput{Negotiations: make([]CachedNegotiation, 0, len(snaps))}
	for _, snap := range snaps {
		out.Negotiations = append(out.Negotiations, CachedNegotiation{
			NegotiationOutput: negotiationToOutput(&snap.Negotiation),
			FetchedAt:         snap.FetchedAt.Format(time.RFC3339),
		})
	}

	return nil, out, nil
}
