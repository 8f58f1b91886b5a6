// ABOUTME: Graphviz rendering of the negotiation status flow
// ABOUTME: Highlights where a cached thread currently sits in the flow
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// statusFlow enumerates the transitions the marketplace allows. Used only
// for drawing; the server enforces the real transitions.
var statusFlow = []struct {
	from, to string
	label    string
}{
	{models.StatusPendingInspection, models.StatusAccepted, "confirm"},
	{models.StatusPendingInspection, models.StatusCountered, "counter"},
	{models.StatusCountered, models.StatusCountered, "counter"},
	{models.StatusCountered, models.StatusAccepted, "accept"},
	{models.StatusCountered, models.StatusOfferRejected, "reject"},
	{models.StatusOfferRejected, models.StatusCancelled, "close"},
	{models.StatusAccepted, models.StatusPendingInspection, "schedule"},
	{models.StatusAccepted, models.StatusCompleted, "finalize"},
	{models.StatusPendingInspection, models.StatusCancelled, "withdraw"},
}

var statusLabels = map[string]string{
	models.StatusPendingInspection: "Pending\nInspection",
	models.StatusCountered:         "Countered",
	models.StatusAccepted:          "Accepted",
	models.StatusOfferRejected:     "Offer\nRejected",
	models.StatusCompleted:         "Completed",
	models.StatusCancelled:         "Cancelled",
}

// GenerateFlowGraph renders the status flow. When negotiationID names a
// cached thread, its current status node is filled.
func (g *GraphGenerator) GenerateFlowGraph(negotiationID string) (string, error) {
	currentStatus := ""
	if negotiationID != "" && g.db != nil {
		snap, err := db.GetSnapshot(g.db, negotiationID)
		if err != nil {
			return "", fmt.Errorf("failed to load cached negotiation: %w", err)
		}
		if snap != nil {
			currentStatus = snap.Negotiation.Status
		}
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Negotiation Flow")
	graph.SetRankDir(cgraph.LRRank)

	nodes := make(map[string]*cgraph.Node)
	for status, label := range statusLabels {
		node, err := graph.CreateNodeByName(status)
		if err != nil {
			return "", fmt.Errorf("failed to create status node: %w", err)
		}
		node.SetLabel(label)
		node.SetShape("box")
		if status == models.StatusCompleted || status == models.StatusCancelled {
			node.SetShape("doublecircle")
		}
		if status == currentStatus {
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")
		}
		nodes[status] = node
	}

	for _, t := range statusFlow {
		edge, err := graph.CreateEdgeByName("", nodes[t.from], nodes[t.to])
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(t.label)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
