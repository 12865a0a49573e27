package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("amortize", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var req validators.LoanRequest
	fs.Float64Var(&req.Principal, "principal", 0, "loan amount")
	fs.Float64Var(&req.AnnualRatePercent, "rate", 0, "nominal annual interest rate, percent")
	fs.IntVar(&req.TermYears, "years", 0, "loan term in years")
	fs.IntVar(&req.PaymentsPerYear, "per-year", 12, "payments per year")
	fs.StringVar(&req.StartDate, "start", "", "first payment date, YYYY-MM-DD")
	fs.Float64Var(&req.ExtraPayment, "extra", 0, "extra principal paid every period")
	summaryOnly := fs.Bool("summary", false, "print only the summary")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if err := req.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	params, err := req.Parameters()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	result := calculations.Calculate(params)

	var out interface{} = result
	if *summaryOnly {
		out = result.Summary
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	return 0
}
