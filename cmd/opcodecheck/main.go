// opcodecheck validates the opcode tables of every expansion profile.
//
// Usage:
//
//	go run ./cmd/opcodecheck -data Data
//	go run ./cmd/opcodecheck -data Data -v
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/udisondev/wowee/internal/opcode"
)

func main() {
	dataRoot := flag.String("data", "Data", "data root with expansions/ and opcodes/aliases.json")
	verbose := flag.Bool("v", false, "print every expansion, not only failing ones")
	flag.Parse()

	aliases, err := opcode.LoadAliases(filepath.Join(*dataRoot, "opcodes", "aliases.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	reports, err := opcode.Validate(filepath.Join(*dataRoot, "expansions"), aliases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(reports) == 0 {
		fmt.Fprintf(os.Stderr, "no opcode tables under %s\n", *dataRoot)
		os.Exit(1)
	}

	if failed := printReports(os.Stdout, reports, *verbose); failed > 0 {
		os.Exit(1)
	}
}

// printReports writes a summary and returns the number of failing expansions.
func printReports(w io.Writer, reports []opcode.Report, verbose bool) int {
	failed := 0
	for _, r := range reports {
		if r.OK() {
			if verbose {
				fmt.Fprintf(w, "ok   %-10s %d/%d mapped\n", r.Expansion, r.Mapped, r.Entries)
			}
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL %-10s %s\n", r.Expansion, r.Path)
		for _, name := range r.Unknown {
			fmt.Fprintf(w, "     unknown opcode name %s\n", name)
		}
		wires := make([]uint16, 0, len(r.Duplicates))
		for wire := range r.Duplicates {
			wires = append(wires, wire)
		}
		slices.Sort(wires)
		for _, wire := range wires {
			fmt.Fprintf(w, "     wire 0x%03X claimed by %s\n", wire, strings.Join(r.Duplicates[wire], ", "))
		}
	}
	fmt.Fprintf(w, "%d expansions checked, %d failed\n", len(reports), failed)
	return failed
}
