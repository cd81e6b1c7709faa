/*
 * MIT License
 *
 * Copyright (c) 2024 The Loadforge Authors
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
 *
 *
 */

// Command loadforge-ctl is a minimal stand-in controller (§4.9's
// link state machine, viewed from the other end): it listens for one
// client-manager connection, completes the hello handshake, and then
// takes start/stop/shutdown commands from stdin for manual
// smoke-testing of a manager deployment. It is not a production
// controller.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	spfcbr "github.com/spf13/cobra"

	liblink "github.com/nabbar/loadforge/link"
	liblog "github.com/nabbar/loadforge/logger"
	libver "github.com/nabbar/loadforge/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	var listenAddr string
	var release string

	cmd := &spfcbr.Command{
		Use:     "loadforge-ctl",
		Short:   "Accept one client-manager connection and issue start/stop/shutdown commands",
		Example: "loadforge-ctl --listen 0.0.0.0:7800",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			return runCtl(listenAddr, release)
		},
	}

	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "0.0.0.0:7800", "address to accept a client-manager connection on")
	cmd.Flags().StringVar(&release, "accept-client-version", "", "semver constraint the connecting manager's clientVersion must satisfy (empty accepts any)")
	return cmd
}

func runCtl(listenAddr, constraint string) error {
	log := liblog.New()

	ver, err := libver.New("loadforge-ctl", "1.0.0", constraint)
	if err != nil {
		return fmt.Errorf("building version constraint: %w", err)
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listenAddr, err)
	}
	defer ln.Close()

	log.Entry(liblog.InfoLevel, "waiting for a client-manager connection").FieldAdd("address", listenAddr).Log()

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accepting connection: %w", err)
	}

	ctrl, err := liblink.AcceptController(conn, ver, log, 0)
	if err != nil {
		return fmt.Errorf("completing handshake: %w", err)
	}
	defer ctrl.Close()

	log.Entry(liblog.InfoLevel, "client-manager connected").
		FieldAdd("clientId", ctrl.PeerClientID()).
		FieldAdd("clientVersion", ctrl.PeerClientVersion()).
		Log()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return runCommandLoop(gctx, ctrl, log) })
	grp.Go(func() error { return watchSignals(gctx, cancel) })

	return grp.Wait()
}

func watchSignals(ctx context.Context, cancel context.CancelFunc) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-sig:
		cancel()
		return nil
	case <-ctx.Done():
		return nil
	}
}

func runCommandLoop(ctx context.Context, ctrl *liblink.ControllerConn, log liblog.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: start <n> | stop <n> | shutdown | quit")

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			n := parseCount(fields, 1)
			resp, err := ctrl.StartClient(n)
			if err != nil {
				log.Entry(liblog.ErrorLevel, "start request failed").ErrorAdd(false, err).Log()
				continue
			}
			fmt.Printf("start: %s %s\n", resp.Code.String(), resp.Text)

		case "stop":
			n := parseCount(fields, 1)
			resp, err := ctrl.StopClient(n)
			if err != nil {
				log.Entry(liblog.ErrorLevel, "stop request failed").ErrorAdd(false, err).Log()
				continue
			}
			fmt.Printf("stop: stopped %d\n", resp.StoppedCount)

		case "shutdown":
			if err := ctrl.Shutdown(); err != nil {
				log.Entry(liblog.ErrorLevel, "shutdown notice failed").ErrorAdd(false, err).Log()
			}
			return nil

		case "quit":
			return nil

		default:
			fmt.Println("unknown command")
		}
	}

	return scanner.Err()
}

func parseCount(fields []string, i int) int64 {
	if i >= len(fields) {
		return 1
	}
	n, err := strconv.ParseInt(fields[i], 10, 64)
	if err != nil {
		return 1
	}
	return n
}
