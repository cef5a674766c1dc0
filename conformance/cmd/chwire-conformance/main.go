// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/Query-farm/chwire/chwire"
	"github.com/Query-farm/chwire/conformance"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--list" {
		for _, v := range conformance.Vectors() {
			fmt.Printf("%-28s %s\n", v.Name, v.TypeName)
		}
		return
	}

	results := conformance.Run(chwire.NewRegistry())
	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
			fmt.Printf("FAIL %-28s %v\n", r.Vector.Name, r.Err)
		} else {
			fmt.Printf("ok   %-28s\n", r.Vector.Name)
		}
	}
	fmt.Printf("%d vectors, %d failures\n", len(results), failures)
	if failures > 0 {
		os.Exit(1)
	}
}
