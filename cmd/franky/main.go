/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Command franky starts the FrankyGo UCI chess engine. It reads its
// configuration, wires up the command line flags and optionally enables
// CPU/memory profiling before handing control to the UCI command loop.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	flag "github.com/spf13/pflag"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/uci"
	"github.com/frankkopp/FrankyGo/version"
)

var (
	logLevel       string
	searchLogLevel string
	cpuProfile     bool
	memProfile     bool
	showVersion    bool
)

func init() {
	flag.StringVar(&logLevel, "loglevel", "", "general log level (off|critical|error|warning|notice|info|debug)")
	flag.StringVar(&searchLogLevel, "searchloglevel", "", "search trace log level (off|critical|error|warning|notice|info|debug)")
	flag.BoolVar(&cpuProfile, "cpuprofile", false, "enable CPU profiling for the lifetime of the process")
	flag.BoolVar(&memProfile, "memprofile", false, "enable memory profiling for the lifetime of the process")
	flag.BoolVar(&showVersion, "version", false, "print the engine version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("FrankyGo " + version.Version())
		os.Exit(0)
	}

	config.Setup()
	if logLevel != "" {
		config.Settings.Log.LogLvl = logLevel
	}
	if searchLogLevel != "" {
		config.Settings.Log.SearchLogLvl = searchLogLevel
	}

	if cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if memProfile {
		defer profile.Start(profile.MemProfile).Stop()
	}

	uciHandler := uci.NewUciHandler()
	uciHandler.Loop()
}
