// ShabalCore: Proof-of-Capacity Plotting & Mining Engines
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command poc-plot generates Proof-of-Capacity nonces for an account id
// and writes them to a plot file, picking the widest engine the host
// CPU supports unless told otherwise.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"shabalcore/internal/config"
	"shabalcore/internal/engine"
	"shabalcore/internal/plotfile"
	"shabalcore/pkg/poc"
	"shabalcore/pkg/shabal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("poc-plot: load config: %v", err)
	}

	accountID := flag.Uint64("account", cfg.AccountID, "numeric account id")
	start := flag.Uint64("start", 0, "first nonce index to generate")
	count := flag.Uint64("count", 1, "number of nonces to generate")
	out := flag.String("out", "", "output plot file path (required)")
	engineName := flag.String("engine", cfg.PreferredEngine, "engine name, empty for auto-detect")
	flag.Parse()

	if *out == "" {
		fmt.Fprintln(os.Stderr, "poc-plot: -out is required")
		os.Exit(2)
	}

	factory := engine.NewFactory(nil)
	e := factory.Best()
	if *engineName != "" {
		if chosen := factory.Get(*engineName); chosen != nil {
			e = chosen
		} else {
			log.Fatalf("poc-plot: unknown engine %q", *engineName)
		}
	}
	if !e.IsAvailable() {
		log.Fatalf("poc-plot: engine %q is not available on this host", e.Name())
	}
	if err := e.Initialize(); err != nil {
		log.Fatalf("poc-plot: initialize %s: %v", e.Name(), err)
	}
	defer e.Shutdown()

	log.Printf("poc-plot: generating %d nonces for account %d starting at %d using %s",
		*count, *accountID, *start, e.Name())

	width := shabal.Width(e.Width())
	lanes := *count
	if rem := lanes % uint64(width); rem != 0 {
		lanes += uint64(width) - rem
		log.Printf("poc-plot: rounding count up to %d to fill a %s batch", lanes, e.Name())
	}

	cache := make([]byte, lanes*poc.NonceSize)
	if err := poc.GenerateNonces(width, cache, poc.AccountID(*accountID), poc.NonceIndex(*start), lanes); err != nil {
		log.Fatalf("poc-plot: generate nonces: %v", err)
	}

	header := plotfile.Header{
		Account: poc.AccountID(*accountID),
		Start:   poc.NonceIndex(*start),
		Count:   lanes,
	}
	if err := plotfile.Write(*out, header, plotfile.Linearize(width, cache)); err != nil {
		log.Fatalf("poc-plot: write plot file: %v", err)
	}

	log.Printf("poc-plot: wrote %d nonces (%d bytes) to %s", lanes, len(cache), *out)
}
