// ABOUTME: Visualization CLI commands
// ABOUTME: Renders negotiation flow and activity timeline graphs
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/haggle/viz"
)

// VizFlowCommand renders the status flow graph.
func VizFlowCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("flow", flag.ExitOnError)
	id := fs.String("id", "", "Highlight a cached negotiation's current status")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	generator := viz.NewGraphGenerator(database)
	dot, err := generator.GenerateFlowGraph(*id)
	if err != nil {
		return err
	}

	return writeGraph(dot, *output)
}

// VizTimelineCommand renders a thread's local activity timeline.
func VizTimelineCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("timeline", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	generator := viz.NewGraphGenerator(database)
	dot, err := generator.GenerateTimeline(*id)
	if err != nil {
		return err
	}

	return writeGraph(dot, *output)
}

func writeGraph(dot, output string) error {
	if output == "" {
		fmt.Println(dot)
		return nil
	}

	if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	fmt.Printf("✓ Graph written to %s\n", output)
	return nil
}
