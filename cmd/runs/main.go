package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"huf_go/internal/config"
	"huf_go/pkg/hufapi"
)

func main() {
	limit := flag.Int("n", 20, "number of runs to list")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runs, err := hufapi.New(cfg.ServerURL).ListRuns(ctx, *limit)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("%d runs\n", len(runs))
	for _, r := range runs {
		fmt.Printf("%s  %-10s %s -> %s  %d -> %d bytes\n",
			r.CreatedAt.Format(time.RFC3339), r.Op, r.Input, r.Output, r.InputBytes, r.OutputBytes)
	}
}
