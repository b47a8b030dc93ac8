// settlectl is the CLI surface over Core B: parse a scenario file and
// either print a summary of the assembled Market (party and
// transaction counts) or solve it and print the
// executed transactions and resulting state. Not part of either core;
// a thin wrapper around scenarioio.Parse, market.Assemble, and
// settlement.Solve.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/atmx/qumo-settle/internal/market"
	"github.com/atmx/qumo-settle/internal/scenarioio"
	"github.com/atmx/qumo-settle/internal/settlement"
	"github.com/atmx/qumo-settle/internal/solverbackend"
)

func main() {
	var (
		path  = flag.String("scenario", "", "path to a CSV-like scenario text file (required)")
		solve = flag.Bool("solve", false, "solve the settlement IP instead of only assembling")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "settlectl: -scenario is required")
		flag.Usage()
		os.Exit(2)
	}

	mkt, err := parseFromFile(*path)
	if err != nil {
		slog.Error("settlectl: parse failed", "err", err)
		os.Exit(1)
	}

	if !*solve {
		printJSON(marketSummary{NumParties: mkt.NumParties, NumTransactions: mkt.NumTransactions})
		return
	}

	result, err := solveMarket(mkt)
	if err != nil {
		slog.Error("settlectl: solve failed", "err", err)
		os.Exit(1)
	}
	printJSON(result)
}

// parseFromFile is the CLI/program surface's parse_from_file(numeric,
// path) entry point from the external interface: read the named
// scenario file and return its assembled Market. "numeric" is fixed
// to decimal.Decimal, the only numeric type Core B's market model
// uses.
func parseFromFile(path string) (*market.Market, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("settlectl: opening %s: %w", path, err)
	}
	defer f.Close()

	scenario, err := scenarioio.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("settlectl: parsing %s: %w", path, err)
	}

	return market.Assemble(scenario)
}

// solveMarket is the CLI/program surface's solve(model) entry point:
// formulate and solve the settlement IP for m via the HiGHS backend.
func solveMarket(mkt *market.Market) (*settlement.Solved, error) {
	return settlement.Solve(solverbackend.NewHiGHSBackend(), mkt)
}

type marketSummary struct {
	NumParties      int `json:"num_parties"`
	NumTransactions int `json:"num_transactions"`
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("settlectl: encoding output", "err", err)
		os.Exit(1)
	}
}
