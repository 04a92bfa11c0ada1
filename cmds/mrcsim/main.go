// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mrcsim runs a cold boot followed by a fast boot against a simulated
// memory controller and reports whether the trained state survived.
//
// Synopsis:
//
//	mrcsim [--variant cnl|cfl] [--sagv=false] [--point low|mid|high]
//	       [--image FILE] [--swap-dimm] [--seed N] [-d]
package main

import (
	"log"
	"os"

	flag "github.com/spf13/pflag"

	mrclog "github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
)

var (
	debug        = flag.BoolP("debug", "d", false, "enable debug prints")
	variantName  = flag.String("variant", "cnl", "silicon variant")
	sagv         = flag.Bool("sagv", true, "sweep the SA-GV points during the cold boot")
	point        = flag.String("point", "high", "SA-GV point restored by the fast boot [low, mid, high]")
	imagePath    = flag.String("image", "", "flash image keeping the training data; created if missing")
	swapDimm     = flag.Bool("swap-dimm", false, "replace a DIMM between the two boots")
	seed         = flag.Uint32("seed", 1, "seed of the simulated training results")
	rcompTimeout = flag.Duration("rcomp-timeout", 0, "RCOMP wait budget, 0 selects the default")
)

func main() {
	flag.Parse()
	mrclog.SetDebug(*debug)

	if flag.NArg() != 0 {
		log.Fatal("mrcsim takes no positional arguments")
	}

	cfg := config{
		Variant:      *variantName,
		SaGv:         *sagv,
		Point:        *point,
		ImagePath:    *imagePath,
		SwapDimm:     *swapDimm,
		Seed:         *seed,
		RcompTimeout: *rcompTimeout,
	}
	if err := run(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}
