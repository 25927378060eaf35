package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/api"
	"github.com/hbaltazar/go-match-engine/internal/engine"
)

const maxRequestBodyBytes = 64 << 20 // Element scenes can be large

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./match_data", "Directory to store project data")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Match Engine - geometric correspondence between paired structural models\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                         # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000             # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/match   # Use custom data directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Match Engine v1.0.0\n")
		fmt.Printf("Intersection-volume matching with dimension validation and async runs\n")
		return
	}

	// Initialize the matching engine
	log.Printf("Using data directory: %s", *dataDir)
	matchEngine := engine.NewEngine(*dataDir)
	defer matchEngine.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodyBytes))

	// Setup API routes
	api.SetupRoutes(router, matchEngine)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
