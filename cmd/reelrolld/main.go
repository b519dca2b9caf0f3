package main

import (
	"flag"
	"fmt"
	"os"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	migrateOnly := flag.Bool("migrate-only", false, "Apply the catalog schema and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("reelrolld %s\n", version)
		os.Exit(0)
	}

	if err := runServer(*configPath, *migrateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
