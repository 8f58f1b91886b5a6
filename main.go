// ABOUTME: Entry point for the haggle negotiation client
// ABOUTME: Routes to the TUI, CLI commands, MCP server, and exports
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/cli"
	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/negotiation"
	"github.com/harperreed/haggle/tui"
)

const version = "0.1.0"

func main() {
	// Optional .env for HAGGLE_API_* and GOOGLE_CLIENT_* variables.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Local cache path (default: ~/.local/share/haggle/haggle.db)")
	asParty := flag.String("as", "seller", "Act as buyer or seller")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("haggle version %s\n", version)
		os.Exit(0)
	}

	viewer := models.Party(*asParty)
	if viewer != models.PartyBuyer && viewer != models.PartySeller {
		log.Fatalf("--as must be buyer or seller, got %q", *asParty)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "tui":
		client := mustClient()
		database := openCache(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: tui requires a negotiation ID")
			printUsage()
			os.Exit(1)
		}

		ctrl := negotiation.New(client, viewer)
		model := tui.NewModel(ctrl, database, commandArgs[0])
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "nego":
		if len(commandArgs) == 0 {
			fmt.Println("Error: nego requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		database := openCache(*dbPath)
		defer database.Close()

		negoCommand := commandArgs[0]
		negoArgs := commandArgs[1:]

		switch negoCommand {
		case "show":
			if err := cli.ShowNegotiationCommand(mustClient(), database, viewer, negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "respond":
			if err := cli.RespondCommand(mustClient(), database, viewer, negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "inspection":
			if err := cli.InspectionCommand(mustClient(), database, viewer, negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "slots":
			if err := cli.SlotsCommand(negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "activity":
			if err := cli.ActivityCommand(database, negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list":
			if err := cli.ListCommand(database, negoArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown nego command: %s\n\n", negoCommand)
			printUsage()
			os.Exit(1)
		}

	case "auth":
		if len(commandArgs) == 0 {
			fmt.Println("Error: auth requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		switch commandArgs[0] {
		case "login":
			if err := cli.AuthLoginCommand(commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "google":
			if err := cli.AuthGoogleCommand(commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown auth command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	case "calendar":
		database := openCache(*dbPath)
		defer database.Close()

		if err := cli.CalendarExportCommand(mustClient(), database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		database := openCache(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: viz requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		switch commandArgs[0] {
		case "flow":
			if err := cli.VizFlowCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "timeline":
			if err := cli.VizTimelineCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown viz command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	case "mcp":
		database := openCache(*dbPath)
		defer database.Close()

		if err := cli.MCPCommand(mustClient(), database, viewer); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func mustClient() *api.Client {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.IsConfigured() {
		log.Fatalf("Marketplace credentials not configured. Run 'haggle auth login --url <api-url>' or set HAGGLE_API_URL and HAGGLE_API_TOKEN")
	}
	return api.NewClient(cfg)
}

func openCache(path string) *sql.DB {
	if path == "" {
		path = db.DefaultPath()
	}
	database, err := db.OpenDatabase(path)
	if err != nil {
		log.Fatalf("Failed to open local cache: %v", err)
	}
	return database
}

func printUsage() {
	fmt.Printf(`haggle v%s - Property negotiation client

USAGE:
  haggle [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Local cache path (default: ~/.local/share/haggle/haggle.db)
  --as <party>           Act as buyer or seller (default: seller)

COMMANDS:
  tui <negotiation-id>   Interactive negotiation screens
  nego                   Negotiation commands
  auth                   Credential management
  calendar               Calendar export
  viz                    Visualization commands
  mcp                    Start MCP server for assistant integration

NEGO COMMANDS:
  haggle nego show --id <id>          Fetch and print one thread
  haggle nego respond --id <id> --decision <accept|reject|counter> [--amount <n>]
  haggle nego inspection --id <id> --status <available|unavailable> [--date <YYYY-MM-DD> --time <slot>]
  haggle nego slots                   Print selectable inspection days and times
  haggle nego activity --id <id>      Print the local activity log
  haggle nego list                    Print locally cached threads

AUTH COMMANDS:
  haggle auth login --url <api-url>   Store marketplace credentials
  haggle auth google                  Authenticate with Google for calendar export

CALENDAR:
  haggle calendar --id <id> [--fetch] Export the inspection slot to Google Calendar

VIZ COMMANDS:
  haggle viz flow [--id <id>]         Render the negotiation status flow
  haggle viz timeline --id <id>       Render a thread's activity timeline
    --output <file>                   Output file (default: stdout)

EXAMPLES:
  # Open the interactive view for a thread
  haggle tui 6f1c9a

  # Counter an offer from the command line
  haggle nego respond --id 6f1c9a --decision counter --amount 42000000

  # Counter-propose an inspection slot
  haggle nego inspection --id 6f1c9a --status available --date 2025-12-16 --time "2:00 PM"

`, version)
}
