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

// Command loadforge-client runs one worker pool against a parsed
// script (§4.5, §4.8): one Interpreter per worker, paced by an
// optional variance program (§4.6) and optionally exporting every
// script variable's stat trackers as Prometheus metrics (§4.3).
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	spfcbr "github.com/spf13/cobra"

	libcfg "github.com/nabbar/loadforge/config"
	libstat "github.com/nabbar/loadforge/internal/stat"
	liblog "github.com/nabbar/loadforge/logger"
	libinterp "github.com/nabbar/loadforge/script/interp"
	libparse "github.com/nabbar/loadforge/script/parser"
	libvariance "github.com/nabbar/loadforge/variance"
	libworker "github.com/nabbar/loadforge/worker"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	var configPath string

	cmd := &spfcbr.Command{
		Use:     "loadforge-client",
		Short:   "Run one worker pool against a load-generation script",
		Example: "loadforge-client --config /etc/loadforge/client.yaml",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			return runClient(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "/etc/loadforge/client.yaml", "path to the client configuration file")
	return cmd
}

func runClient(configPath string) error {
	log := liblog.New()

	loader, err := libcfg.NewLoader(configPath, log)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := libcfg.LoadClientConfig(loader.Viper())
	if err != nil {
		return fmt.Errorf("parsing client config: %w", err)
	}

	scriptSrc, rerr := os.ReadFile(cfg.ScriptFile)
	if rerr != nil {
		return fmt.Errorf("reading script file: %w", rerr)
	}

	ast, perr := libparse.New(string(scriptSrc), nil).Parse()
	if perr != nil {
		return fmt.Errorf("parsing script: %w", perr)
	}

	interpreters := make([]*libinterp.Interpreter, cfg.Workers)
	for i := range interpreters {
		it, ierr := libinterp.New(ast, nil, log)
		if ierr != nil {
			return fmt.Errorf("building interpreter %d: %w", i, ierr)
		}
		interpreters[i] = it
	}

	active := libvariance.NewActiveSet(cfg.Workers)

	var scheduler *libvariance.Scheduler
	if cfg.VarianceFile != "" {
		f, ferr := os.Open(cfg.VarianceFile)
		if ferr != nil {
			return fmt.Errorf("opening variance file: %w", ferr)
		}
		prog, perr2 := libvariance.ParseProgramFile(f)
		_ = f.Close()
		if perr2 != nil {
			return fmt.Errorf("parsing variance file: %w", perr2)
		}

		timeline, cerr := libvariance.Compile(prog, cfg.Workers)
		if cerr != nil {
			return fmt.Errorf("compiling variance program: %w", cerr)
		}

		scheduler = libvariance.NewScheduler(timeline, active, log)
	} else {
		active.SetAll(true)
	}

	job := libworker.NewJobContext()

	if cfg.MetricsListen != "" {
		registry := libstat.NewRegistry()
		for i, it := range interpreters {
			collector := libstat.NewCollector(it.StatTrackers)
			if aerr := registry.Add(collector); aerr != nil {
				log.Entry(liblog.WarnLevel, "failed to register worker metrics collector").
					FieldAdd("worker", i).ErrorAdd(false, aerr).Log()
			}
		}
		startMetricsServer(cfg.MetricsListen, registry.Handler(), log)
	}

	pool := libworker.NewPool(cfg.Workers, active, job, libworker.Callbacks{
		PerIteration: func(me int) {
			if err := interpreters[me].Execute(job); err != nil {
				log.Entry(liblog.ErrorLevel, "script execution failed").
					FieldAdd("worker", me).ErrorAdd(false, err).Log()
			}
		},
		IdleSleep: cfg.EffectiveIdleSleep(),
	})

	loader.OnReload(func() {
		if fresh, lerr := libcfg.LoadClientConfig(loader.Viper()); lerr == nil {
			pool.SetIdleSleep(fresh.EffectiveIdleSleep())
			log.Entry(liblog.InfoLevel, "client config reloaded, idle sleep updated").
				FieldAdd("idle_sleep", fresh.EffectiveIdleSleep().String()).Log()
		} else {
			log.Entry(liblog.WarnLevel, "reloaded client config failed validation, keeping previous settings").
				ErrorAdd(true, lerr).Log()
		}
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	pool.Start()
	if scheduler != nil {
		scheduler.Start()
	}

	<-sig
	log.Entry(liblog.InfoLevel, "signal received, requesting shutdown").Log()

	if scheduler != nil {
		scheduler.Stop()
		<-scheduler.Done()
	}
	job.RequestStop()
	pool.Wait()

	return nil
}

func startMetricsServer(addr string, handler http.Handler, log liblog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Entry(liblog.WarnLevel, "metrics server stopped").ErrorAdd(false, err).Log()
		}
	}()
}
