package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Luminc/iris/config"
	"github.com/Luminc/iris/internal/artisio"
)

func main() {
	var lotUUID string
	flag.StringVar(&lotUUID, "lot", "", "lot UUID to fetch")
	flag.Parse()

	if lotUUID == "" && flag.NArg() > 0 {
		lotUUID = flag.Arg(0)
	}
	if lotUUID == "" {
		fmt.Fprintf(os.Stderr, "Usage: get-lot <lot_uuid>\n")
		os.Exit(1)
	}

	config.LoadEnvFile()

	client := artisio.NewClient(artisio.ClientOpts{})
	lot, auction, err := client.GetLotWithAuction(context.Background(), lotUUID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching lot: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(map[string]any{
		"lot":     lot,
		"auction": auction,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
