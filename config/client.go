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
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/loadforge/errors"
	libvpr "github.com/nabbar/loadforge/viper"
)

// ClientConfig is one loadforge-client process's settings (§4.8, §4.9):
// which script and variance program to run, how many workers, and the
// idle-poll cadence workers fall back to when paused.
type ClientConfig struct {
	ScriptFile    string        `mapstructure:"scriptFile" validate:"required,file"`
	VarianceFile  string        `mapstructure:"varianceFile" validate:"omitempty,file"`
	Workers       int           `mapstructure:"workers" validate:"min=1"`
	IdleSleep     time.Duration `mapstructure:"idleSleep"`
	MetricsListen string        `mapstructure:"metricsListen"`
}

// LoadClientConfig unmarshals and validates the "client" key out of v.
func LoadClientConfig(v libvpr.Viper) (*ClientConfig, liberr.Error) {
	var cfg ClientConfig

	if err := v.UnmarshalKey("client", &cfg); err != nil {
		e := liberr.Make(ErrUnmarshal)
		e.Add(err)
		return nil, e
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *ClientConfig) Validate() liberr.Error {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if err := libval.New().Struct(c); err != nil {
		e := liberr.Make(ErrValidate)
		e.Add(err)
		return e
	}
	return nil
}

// EffectiveIdleSleep mirrors worker.Callbacks' own 100ms default so
// callers can log the value actually in effect before building a Pool.
func (c *ClientConfig) EffectiveIdleSleep() time.Duration {
	if c.IdleSleep <= 0 {
		return 100 * time.Millisecond
	}
	return c.IdleSleep
}
