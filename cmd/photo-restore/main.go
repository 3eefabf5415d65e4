package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/photo-restore/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Fixed input and output locations, relative to the working directory.
// The program intentionally takes no path arguments.
const (
	imagesDir      = "images"
	outputDir      = "output"
	inputImageName = "img-3.jpg"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("photo-restore %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("photo-restore - single-image denoise and sharpen pipeline")
			fmt.Println()
			fmt.Println("Usage: photo-restore [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PHOTO_RESTORE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Printf("The program reads %s, applies a bilateral denoise followed\n",
				filepath.Join(imagesDir, inputImageName))
			fmt.Printf("by an unsharp mask, and writes the result under %s/.\n", outputDir)
			return
		}
	}

	// Informational lines go to stdout; diagnostics go to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("PHOTO_RESTORE_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("photo-restore v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	p := pipeline.New()
	p.Debug = debug

	inputPath := filepath.Join(imagesDir, inputImageName)
	if _, err := p.Process(inputPath, outputDir); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}
}
