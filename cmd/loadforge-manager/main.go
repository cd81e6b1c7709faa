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

// Command loadforge-manager runs the client-manager side of the
// control link (§4.9): it dials a controller, negotiates a hello, and
// supervises however many client processes the controller asks it to
// spawn.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	spfcbr "github.com/spf13/cobra"

	libcfg "github.com/nabbar/loadforge/config"
	liblink "github.com/nabbar/loadforge/link"
	liblog "github.com/nabbar/loadforge/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	var configPath string

	cmd := &spfcbr.Command{
		Use:     "loadforge-manager",
		Short:   "Run the client-manager side of the load-generation control link",
		Example: "loadforge-manager --config /etc/loadforge/manager.yaml",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			return runManager(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "/etc/loadforge/manager.yaml", "path to the manager configuration file")
	return cmd
}

func runManager(configPath string) error {
	log := liblog.New()

	loader, err := libcfg.NewLoader(configPath, log)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := libcfg.LoadManagerConfig(loader.Viper())
	if err != nil {
		return fmt.Errorf("parsing manager config: %w", err)
	}

	mgr := liblink.New(*cfg.LinkConfig(), log, liblink.NewOSSpawner(log))

	loader.OnReload(func() {
		if fresh, lerr := libcfg.LoadManagerConfig(loader.Viper()); lerr == nil {
			log.Entry(liblog.InfoLevel, "manager config reloaded, restart required to apply link settings").
				FieldAdd("address", fresh.Address).Log()
		} else {
			log.Entry(liblog.WarnLevel, "reloaded manager config failed validation, keeping previous settings").
				ErrorAdd(true, lerr).Log()
		}
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Entry(liblog.InfoLevel, "signal received, requesting shutdown").Log()
		mgr.RequestStop()
	}()

	mgr.Run()
	return nil
}
