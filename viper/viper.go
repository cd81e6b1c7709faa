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

// Package viper thinly wraps spf13/viper so config components depend on an
// interface instead of a concrete *viper.Viper, and so a file watch
// (fsnotify, wired through viper.WatchConfig) can trigger Config.Reload.
package viper

import (
	"github.com/fsnotify/fsnotify"
	spfvpr "github.com/spf13/viper"
)

// Viper is the subset of *viper.Viper that loadforge components read their
// settings through.
type Viper interface {
	Get(key string) interface{}
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string
	UnmarshalKey(key string, rawVal interface{}) error
	Unmarshal(rawVal interface{}) error
	IsSet(key string) bool
	OnConfigChange(run func(in fsnotify.Event))
	WatchConfig()
}

// FuncViper returns the shared Viper instance. Components call it lazily
// (after Init) rather than holding a reference, so a config reload that
// rebuilds the underlying instance is observed automatically.
type FuncViper func() Viper

type wrap struct {
	v *spfvpr.Viper
}

// New wraps an existing *viper.Viper.
func New(v *spfvpr.Viper) Viper {
	if v == nil {
		v = spfvpr.New()
	}
	return &wrap{v: v}
}

func (w *wrap) Get(key string) interface{}     { return w.v.Get(key) }
func (w *wrap) GetString(key string) string    { return w.v.GetString(key) }
func (w *wrap) GetInt(key string) int          { return w.v.GetInt(key) }
func (w *wrap) GetBool(key string) bool        { return w.v.GetBool(key) }
func (w *wrap) GetStringSlice(key string) []string {
	return w.v.GetStringSlice(key)
}
func (w *wrap) UnmarshalKey(key string, rawVal interface{}) error {
	return w.v.UnmarshalKey(key, rawVal)
}
func (w *wrap) Unmarshal(rawVal interface{}) error { return w.v.Unmarshal(rawVal) }
func (w *wrap) IsSet(key string) bool              { return w.v.IsSet(key) }
func (w *wrap) OnConfigChange(run func(in fsnotify.Event)) { w.v.OnConfigChange(run) }
func (w *wrap) WatchConfig()                               { w.v.WatchConfig() }
