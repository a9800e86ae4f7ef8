// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/processor"
	"github.com/openmarket/openmarketd/storage"
	"github.com/openmarket/openmarketd/transactionrecord"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "database", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "log-directory", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE --database=DIR [--log-directory=DIR] [tx-file…]", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: exactly one config-file option is required, %d were detected", program, len(options["config-file"]))
	}
	if 1 != len(options["database"]) {
		exitwithstatus.Message("%s: exactly one database option is required, %d were detected", program, len(options["database"]))
	}

	configurationFile := options["config-file"][0]
	ctx, err := chain.LoadContext(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	logDirectory := "log"
	if len(options["log-directory"]) > 0 {
		logDirectory = options["log-directory"][0]
	}
	level := "info"
	if len(options["verbose"]) > 0 {
		level = "debug"
	} else if len(options["quiet"]) > 0 {
		level = "error"
	}
	err = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      program + ".log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
	if nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	store, err := storage.NewLevelDBStore(options["database"][0])
	if nil != err {
		exitwithstatus.Message("%s: database open failed: %q  error: %s", program, options["database"][0], err)
	}
	defer store.Close()

	fork := storage.NewFork(store)
	proc := processor.New(ctx, fork)

	// each argument is a file of hex encoded packed transactions, one
	// per line; no arguments reads standard input
	if 0 == len(arguments) {
		arguments = []string{"-"}
	}

	ok := true
	for _, fileName := range arguments {
		if !applyFile(proc, fileName) {
			ok = false
		}
	}
	if !ok {
		exitwithstatus.Message("%s: some transactions were rejected", program)
	}

	if err = fork.Flush(); nil != err {
		exitwithstatus.Message("%s: database flush failed: %s", program, err)
	}
}

// apply every transaction in one file, true if none were rejected
func applyFile(proc *processor.Processor, fileName string) bool {
	in := os.Stdin
	if "-" != fileName {
		f, err := os.Open(fileName)
		if nil != err {
			fmt.Fprintf(os.Stderr, "open: %q  error: %s\n", fileName, err)
			return false
		}
		defer f.Close()
		in = f
	}

	ok := true
	lineNumber := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1048576), 1048576)
	for scanner.Scan() {
		lineNumber += 1
		line := strings.TrimSpace(scanner.Text())
		if 0 == len(line) || strings.HasPrefix(line, "#") {
			continue
		}

		packed, err := hex.DecodeString(line)
		if nil != err {
			fmt.Fprintf(os.Stderr, "%s:%d: hex decode error: %s\n", fileName, lineNumber, err)
			ok = false
			continue
		}

		tx, err := transactionrecord.Unpack(packed)
		if nil != err {
			fmt.Fprintf(os.Stderr, "%s:%d: unpack error: %s\n", fileName, lineNumber, err)
			ok = false
			continue
		}

		txId := transactionrecord.Packed(packed).TxId()
		result, err := proc.Execute(tx)
		if nil != err {
			fmt.Fprintf(os.Stderr, "%s:%d: %s rejected: %s\n", fileName, lineNumber, txId, err)
			ok = false
			continue
		}
		fmt.Printf("%s %s\n", txId, result)
	}
	if err := scanner.Err(); nil != err {
		fmt.Fprintf(os.Stderr, "read: %q  error: %s\n", fileName, err)
		ok = false
	}
	return ok
}
