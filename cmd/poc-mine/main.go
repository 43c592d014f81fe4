// ShabalCore: Proof-of-Capacity Plotting & Mining Engines
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command poc-mine scans a plot file written by poc-plot for the lowest
// deadline at a given scoop and generation signature.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"shabalcore/internal/plotfile"
	"shabalcore/pkg/poc"
)

func main() {
	path := flag.String("plot", "", "plot file to scan (required)")
	scoop := flag.Int("scoop", 0, "scoop index to evaluate, [0, 4096)")
	gensigHex := flag.String("gensig", "", "64-character hex generation signature (required)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "poc-mine: -plot is required")
		os.Exit(2)
	}
	if *gensigHex == "" {
		fmt.Fprintln(os.Stderr, "poc-mine: -gensig is required")
		os.Exit(2)
	}

	if *scoop < 0 || *scoop >= poc.ScoopsPerNonce {
		log.Fatalf("poc-mine: scoop %d out of range [0, %d)", *scoop, poc.ScoopsPerNonce)
	}

	raw, err := hex.DecodeString(*gensigHex)
	if err != nil || len(raw) != poc.GensigSize {
		log.Fatalf("poc-mine: gensig must be a %d-byte hex string", poc.GensigSize)
	}
	var gensig [poc.GensigSize]byte
	copy(gensig[:], raw)

	header, body, err := plotfile.Read(*path)
	if err != nil {
		log.Fatalf("poc-mine: %v", err)
	}

	caches := plotfile.Caches(body)
	log.Printf("poc-mine: scanning %d nonces (account %d, start %d) at scoop %d",
		len(caches), header.Account, header.Start, *scoop)

	best := poc.FindBestDeadlineCaches(caches, *scoop, gensig)
	if !best.Found() {
		fmt.Println("no nonces scanned")
		return
	}

	nonce := uint64(header.Start) + best.Offset
	fmt.Printf("deadline=%d nonce=%d account=%d\n", uint64(best.Deadline), nonce, header.Account)
}
