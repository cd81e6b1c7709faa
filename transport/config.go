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

// Package transport wraps crypto/tls for the control link (§4.1/§6): the
// link is plain TCP unless a Config is supplied, in which case it is
// wrapped in TLS, optionally in "blind trust" mode that skips server
// certificate verification.
package transport

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	libval "github.com/go-playground/validator/v10"
	liberr "github.com/nabbar/loadforge/errors"
)

// Config describes the optional transport-encryption facility for one
// side of the control link.
type Config struct {
	Enable             bool     `mapstructure:"enable" json:"enable" yaml:"enable" toml:"enable"`
	CertFile           string   `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile" validate:"required_if=Enable true,omitempty,file"`
	KeyFile            string   `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile" validate:"required_if=Enable true,omitempty,file"`
	RootCAFiles        []string `mapstructure:"rootCAFiles" json:"rootCAFiles" yaml:"rootCAFiles" toml:"rootCAFiles"`
	ServerName         string   `mapstructure:"serverName" json:"serverName" yaml:"serverName" toml:"serverName"`
	InsecureSkipVerify bool     `mapstructure:"insecureSkipVerify" json:"insecureSkipVerify" yaml:"insecureSkipVerify" toml:"insecureSkipVerify"`
	MinVersion         uint16   `mapstructure:"minVersion" json:"minVersion" yaml:"minVersion" toml:"minVersion"`
}

const (
	ErrCodeValidate uint16 = iota + 6000
	ErrCodeLoadCert
	ErrCodeLoadCA
)

var (
	ErrValidate = liberr.New(ErrCodeValidate, "transport config validation failed")
	ErrLoadCert = liberr.New(ErrCodeLoadCert, "loading certificate/key pair")
	ErrLoadCA   = liberr.New(ErrCodeLoadCA, "loading root CA pool")
)

// Validate runs struct-tag validation over the config (mirrors the
// teacher's certificates.Config.Validate pattern).
func (c *Config) Validate() liberr.Error {
	if !c.Enable {
		return nil
	}

	if err := libval.New().Struct(c); err != nil {
		e := liberr.Make(ErrValidate)
		e.Add(err)
		return e
	}

	return nil
}

// TLSConfig builds a *tls.Config from Config, or nil if encryption is
// disabled (the caller then dials/listens in plaintext).
func (c *Config) TLSConfig() (*tls.Config, liberr.Error) {
	if c == nil || !c.Enable {
		return nil, nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		ServerName:         c.ServerName,
		InsecureSkipVerify: c.InsecureSkipVerify,
		MinVersion:         c.effectiveMinVersion(),
	}

	if c.CertFile != "" && c.KeyFile != "" {
		pair, er := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if er != nil {
			e := liberr.Make(ErrLoadCert)
			e.Add(er)
			return nil, e
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	if len(c.RootCAFiles) > 0 {
		pool := x509.NewCertPool()
		for _, f := range c.RootCAFiles {
			raw, er := os.ReadFile(f)
			if er != nil {
				e := liberr.Make(ErrLoadCA)
				e.Add(er)
				return nil, e
			}
			if !pool.AppendCertsFromPEM(raw) {
				e := liberr.Make(ErrLoadCA)
				e.Add(liberr.Newf(ErrCodeLoadCA, "no valid certificate found in %s", f))
				return nil, e
			}
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

func (c *Config) effectiveMinVersion() uint16 {
	if c.MinVersion == 0 {
		return tls.VersionTLS12
	}
	return c.MinVersion
}
