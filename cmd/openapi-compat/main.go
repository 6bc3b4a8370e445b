// Command openapi-compat fails when a revised surface document drops paths, operations or responses.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"inkwell/internal/openapi"
)

func main() {
	basePath := flag.String("base", "", "base schema document (yaml or json)")
	revisionPath := flag.String("revision", "", "revision schema document (yaml or json)")
	flag.Parse()

	if strings.TrimSpace(*basePath) == "" || strings.TrimSpace(*revisionPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-compat -base <path> -revision <path>")
		os.Exit(2)
	}

	base, err := openapi.ReadArtifact(*basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load base schema: %v\n", err)
		os.Exit(1)
	}
	revision, err := openapi.ReadArtifact(*revisionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision schema: %v\n", err)
		os.Exit(1)
	}

	if changes := openapi.Compare(base, revision); len(changes) > 0 {
		fmt.Fprintln(os.Stderr, "backward compatibility check failed:")
		for _, c := range changes {
			fmt.Fprintf(os.Stderr, "- %s\n", c)
		}
		os.Exit(1)
	}

	fmt.Println("openapi compatibility check passed")
}
