package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/lukaszgryglicki/cubeview/internal/viewer"
)

func main() {
	viewer.Debug = os.Getenv("DEBUG") != ""
	viewer.PNG = os.Getenv("PNG") != ""
	viewer.GIF = os.Getenv("SKIP_GIF") == ""
	viewer.TEXT = os.Getenv("TEXT") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := "captures/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := viewer.Run(ctx, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
