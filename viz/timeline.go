// ABOUTME: Graphviz rendering of a thread's local activity timeline
// ABOUTME: Chains logged actions in chronological order
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/haggle/db"
)

// GenerateTimeline renders the locally logged actions for one thread as a
// left-to-right chain, oldest first.
func (g *GraphGenerator) GenerateTimeline(negotiationID string) (string, error) {
	activities, err := db.ListActivity(g.db, negotiationID, 100)
	if err != nil {
		return "", fmt.Errorf("failed to load activity log: %w", err)
	}
	if len(activities) == 0 {
		return "", fmt.Errorf("no local activity recorded for negotiation %s", negotiationID)
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

	graph.SetLabel(fmt.Sprintf("Activity: %s", negotiationID))
	graph.SetRankDir(cgraph.LRRank)

	// ListActivity returns newest first; draw oldest first.
	var prev *cgraph.Node
	for i := len(activities) - 1; i >= 0; i-- {
		a := activities[i]
		node, err := graph.CreateNodeByName(a.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create activity node: %w", err)
		}
		label := fmt.Sprintf("%s\n%s\n%s", a.Verb, a.Actor.Display(), a.CreatedAt.Format("Jan 2 15:04"))
		if a.Detail != "" {
			label += "\n" + a.Detail
		}
		node.SetLabel(label)
		node.SetShape("box")

		if prev != nil {
			if _, err := graph.CreateEdgeByName("", prev, node); err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
		}
		prev = node
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
