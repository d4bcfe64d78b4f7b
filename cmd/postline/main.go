// cmd/postline/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/replyforge/postline/internal/config"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Optional .env for API keys and connection strings.
	godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		requireConfigArg("run")
		if err := runPipeline(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "scrape":
		if len(os.Args) < 4 {
			fmt.Fprintf(os.Stderr, "Error: config file and HTML file required\n")
			fmt.Fprintf(os.Stderr, "Usage: postline scrape <config.yaml> <page.html>\n")
			os.Exit(1)
		}
		if err := scrapeFile(os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		requireConfigArg("validate")
		validateConfig(os.Args[2])

	case "template":
		template, err := generateTemplate(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(template)

	case "version", "--version", "-v":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

func requireConfigArg(command string) {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Error: config file required\n")
		fmt.Fprintf(os.Stderr, "Usage: postline %s <config.yaml>\n", command)
		os.Exit(1)
	}
}

func validateConfig(configFile string) {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if hasFlag("-v") || hasFlag("--verbose") {
		fmt.Printf("Configuration details:\n")
		fmt.Printf("  Name: %s\n", cfg.Name)
		fmt.Printf("  Platform: %s%s\n", cfg.Platform, cfg.PlatformFile)
		fmt.Printf("  Feed URL: %s\n", cfg.Live.URL)
		fmt.Printf("  Outputs: %d\n", len(cfg.Outputs))
	}
	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
}

func generateTemplate(args []string) (string, error) {
	templateType := "basic"
	if len(args) > 0 && args[0] == "--type" && len(args) > 1 {
		templateType = args[1]
	}

	template := config.GenerateTemplate(templateType)

	yamlData, err := yaml.Marshal(template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template to YAML: %w", err)
	}
	return string(yamlData), nil
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println("Postline - Social Post Extraction Pipeline")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  postline run <config.yaml>                Watch a live feed and serve the API")
	fmt.Println("  postline scrape <config.yaml> <page.html> Extract posts from a saved page")
	fmt.Println("  postline validate <config.yaml>           Validate configuration file")
	fmt.Println("  postline template [--type <type>]         Generate configuration template")
	fmt.Println("  postline version                          Show version information")
	fmt.Println("  postline help                             Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose                             Enable verbose output")
	fmt.Println()
	fmt.Println("Template types:")
	fmt.Println("  basic    General feed watching template (default)")
	fmt.Println("  crypto   Crypto feed template with SQLite output")
}

func printVersion() {
	fmt.Printf("Postline %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
