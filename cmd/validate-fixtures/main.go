package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/local-library/fixtures"
)

/* validate-fixtures - Standalone CLI tool to validate a catalog fixtures file
 * Usage: go run cmd/validate-fixtures/main.go [fixtures.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	fixturesFile := "fixtures.yaml"
	if len(os.Args) > 1 {
		fixturesFile = os.Args[1]
	}

	fmt.Printf("Validating fixtures file: %s\n\n", fixturesFile)

	loader := fixtures.NewLoader()
	if err := loader.Load(fixturesFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f := loader.File()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("   Genres:    %d\n", len(f.Genres))
	fmt.Printf("   Languages: %d\n", len(f.Languages))
	fmt.Printf("   Authors:   %d\n", len(f.Authors))
	fmt.Printf("   Books:     %d\n", len(f.Books))
	fmt.Printf("   Instances: %d\n", len(f.Instances))

	for i, b := range f.Books {
		fmt.Printf("\n%d. Book: %s\n", i+1, b.Key)
		fmt.Printf("   Title:  %s\n", b.Title)
		fmt.Printf("   Author: %s\n", b.Author)
		fmt.Printf("   ISBN:   %s\n", b.ISBN)
	}

	fmt.Printf("\n✓ All fixtures are valid!\n")
	os.Exit(0)
}
