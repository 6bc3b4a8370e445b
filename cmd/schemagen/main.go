// Command schemagen writes one Swagger document per API surface without starting the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/openapi"
	"inkwell/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	outDir := flag.String("out", "docs", "Directory for the generated documents")
	format := flag.String("format", openapi.FormatYAML, "Output format: yaml or json")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}

	for _, sf := range server.SurfacesFor(cfg) {
		doc, err := openapi.Build(sf, server.SchemaInfo(sf.Name))
		if err != nil {
			log.Fatalf("Failed to build %s schema: %v", sf.Name, err)
		}
		path, err := openapi.WriteArtifact(doc, *outDir, sf.Name, *format)
		if err != nil {
			log.Fatalf("Failed to write %s schema: %v", sf.Name, err)
		}
		fmt.Printf("%s: %d paths -> %s\n", sf.Name, len(doc.Paths.Paths), path)
	}
}
