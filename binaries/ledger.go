package main

import (
	"bufio"
	"fmt"
	"ledger/config"
	"ledger/utils"
	"ledger/worker/infrastructure"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

func main() {
	if len(os.Args) != 3 {
		usage()
	}

	workers, err := strconv.Atoi(os.Args[1])
	if err != nil || workers <= 0 {
		usage()
	}

	params, err := config.LoadRunParameters(workers)
	if err != nil {
		fatal(err)
	}

	closeLog, err := utils.SetLogger(params.LogFile, params.LogLevel)
	if err != nil {
		fatal(err)
	}

	ledgerFile, err := os.Open(os.Args[2])
	if err != nil {
		fatal(fmt.Errorf("open ledger: %w", err))
	}

	out := bufio.NewWriter(os.Stdout)
	worker, err := infrastructure.BuildNewWorker(params, ledgerFile, out)
	if err != nil {
		fatal(err)
	}

	_, runErr := worker.Run()

	if err := out.Flush(); err != nil {
		slog.Error("Could not flush the report", slog.Any("error", err))
	}
	_ = ledgerFile.Close()
	_ = closeLog()

	if runErr != nil {
		fatal(runErr)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %v <num_of_threads> <ledger_file>\n", filepath.Base(os.Args[0]))
	os.Exit(1)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%v: %v\n", filepath.Base(os.Args[0]), err)
	os.Exit(1)
}
