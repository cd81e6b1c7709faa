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

// Package config loads the loadforge-manager and loadforge-client
// settings from a viper-backed source (§1.3): mapstructure-tagged
// structs validated with go-playground/validator/v10, reloaded on file
// change via fsnotify (wired through the viper package's WatchConfig).
package config

import (
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/loadforge/errors"
	liblink "github.com/nabbar/loadforge/link"
	libtransport "github.com/nabbar/loadforge/transport"
	libvpr "github.com/nabbar/loadforge/viper"
)

const (
	ErrCodeUnmarshal uint16 = iota + 7000
	ErrCodeValidate
)

var (
	ErrUnmarshal = liberr.New(ErrCodeUnmarshal, "decoding manager config")
	ErrValidate  = liberr.New(ErrCodeValidate, "validating manager config")
)

// ManagerConfig is the client-manager's link.Config, sourced from a
// configuration file rather than constructed by hand (§4.9, §6).
type ManagerConfig struct {
	Address            string               `mapstructure:"address" validate:"required,hostname_port"`
	LocalAddress       string               `mapstructure:"localAddress"`
	Transport          libtransport.Config  `mapstructure:"transport"`
	ClientVersion      string               `mapstructure:"clientVersion" validate:"required"`
	ClientID           string               `mapstructure:"clientId"`
	MaxClients         int64                `mapstructure:"maxClients" validate:"min=0"`
	AutoCreateClients  int64                `mapstructure:"autoCreateClients" validate:"min=0"`
	ReconnectWait      time.Duration        `mapstructure:"reconnectWait"`
	ReadTimeout        time.Duration        `mapstructure:"readTimeout"`
	StartCommand       []string             `mapstructure:"startCommand"`
}

// LoadManagerConfig unmarshals and validates the "manager" key out of
// v (mirrors the teacher's component _getConfig pattern of
// UnmarshalKey followed by Validate).
func LoadManagerConfig(v libvpr.Viper) (*ManagerConfig, liberr.Error) {
	var cfg ManagerConfig

	if err := v.UnmarshalKey("manager", &cfg); err != nil {
		e := liberr.Make(ErrUnmarshal)
		e.Add(err)
		return nil, e
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct-tag validation, then the transport sub-config's
// own Validate (only meaningful when transport.enable is true).
func (c *ManagerConfig) Validate() liberr.Error {
	if err := libval.New().Struct(c); err != nil {
		e := liberr.Make(ErrValidate)
		e.Add(err)
		return e
	}
	return c.Transport.Validate()
}

// LinkConfig adapts the loaded settings into a link.Config ready to
// hand to link.New.
func (c *ManagerConfig) LinkConfig() *liblink.Config {
	return &liblink.Config{
		Address:       c.Address,
		LocalAddress:  c.LocalAddress,
		Transport:     &c.Transport,
		ClientVersion: c.ClientVersion,
		ClientID:      c.ClientID,
		MaxClients:    c.MaxClients,
		AutoCreate:    c.AutoCreateClients,
		ReconnectWait: c.ReconnectWait,
		ReadTimeout:   c.ReadTimeout,
		StartCommand:  c.StartCommand,
	}
}
