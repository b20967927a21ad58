// Package main rewrites HTML files so they render right to left, keeping
// branding and search controls left to right.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rtlfixcmd "github.com/gothicvibe/rtlpage/internal/cmd/rtlfix"
	"github.com/gothicvibe/rtlpage/internal/platform/config"
)

func main() {
	cfg, err := rtlfixcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitCodef(2, "rtlfix: %v", err)
	}
	log.SetPrefix("[RTLFIX] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rtlfixcmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		stop()
		config.Exitf("rtlfix: %v", err)
	}
}
