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

package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	spfvpr "github.com/spf13/viper"

	liberr "github.com/nabbar/loadforge/errors"
	liblog "github.com/nabbar/loadforge/logger"
	libvpr "github.com/nabbar/loadforge/viper"
)

const ErrCodeReadConfig uint16 = iota + 7100

var ErrReadConfig = liberr.New(ErrCodeReadConfig, "reading config file")

// Loader owns the viper instance backing one loadforge process's
// configuration and fans out fsnotify-triggered reloads (§1.3) to every
// registered reload hook, the way the teacher's config.Config fans a
// file change out to every Component.Reload.
type Loader struct {
	mu    sync.Mutex
	vpr   libvpr.Viper
	raw   *spfvpr.Viper
	hooks []func()
	log   liblog.Logger
}

// NewLoader reads path (any format viper supports: yaml/json/toml) and
// starts watching it for changes.
func NewLoader(path string, log liblog.Logger) (*Loader, liberr.Error) {
	raw := spfvpr.New()
	raw.SetConfigFile(path)

	if err := raw.ReadInConfig(); err != nil {
		e := liberr.Make(ErrReadConfig)
		e.Add(err)
		return nil, e
	}

	l := &Loader{vpr: libvpr.New(raw), raw: raw, log: log}

	l.vpr.OnConfigChange(func(in fsnotify.Event) {
		l.runHooks()
	})
	l.vpr.WatchConfig()

	return l, nil
}

// Viper exposes the wrapped instance for UnmarshalKey-based readers
// such as LoadManagerConfig/LoadClientConfig.
func (l *Loader) Viper() libvpr.Viper { return l.vpr }

// OnReload registers fn to run after every detected file change.
// loadforge-manager/loadforge-client use this to re-validate and
// swap in a fresh ManagerConfig/ClientConfig.
func (l *Loader) OnReload(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, fn)
}

func (l *Loader) runHooks() {
	l.mu.Lock()
	hooks := make([]func(), len(l.hooks))
	copy(hooks, l.hooks)
	l.mu.Unlock()

	if l.log != nil {
		l.log.Entry(liblog.InfoLevel, "configuration file changed, reloading").Log()
	}
	for _, h := range hooks {
		h()
	}
}
