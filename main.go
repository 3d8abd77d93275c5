package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/david-caro/wm-what/internal/bootstrap"
	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/version"
)

//go:embed internal/templates/html/*
var templatesFS embed.FS

func main() {
	// Define flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	// Check if command is provided
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Handle subcommands
	switch args[0] {
	case "server":
		runServer()
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("Collaborative glossary server")
	fmt.Println("\nCommands:")
	fmt.Println("  server    Start the glossary server")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}

func runServer() {
	cfg := config.Load()

	if err := bootstrap.Run(cfg, templatesFS); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}
