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

// Package version carries the semantic version of a loadforge binary and
// the constraint checks used during the client-manager handshake (§4.2):
// a manager rejects a controller whose version it cannot serve, and a
// controller rejects a manager whose version it cannot serve.
package version

import (
	hversion "github.com/hashicorp/go-version"
)

// Version describes one side's release, and the range of the other side's
// releases it accepts.
type Version interface {
	// Name is the component name, e.g. "loadforge-manager".
	Name() string

	// Release is the raw semantic version string, e.g. "1.4.0".
	Release() string

	// String renders "name/release".
	String() string

	// Accepts reports whether the given peer release string satisfies this
	// side's compatibility constraint (e.g. ">= 1.0.0, < 2.0.0"). A parse
	// failure on either version is treated as incompatible, never panics.
	Accepts(peerRelease string) bool
}

type ver struct {
	name       string
	release    string
	parsed     *hversion.Version
	constraint hversion.Constraints
}

// New builds a Version. constraint is a hashicorp/go-version constraint
// expression describing which peer releases this side will accept; an
// empty constraint accepts anything that parses as a semantic version.
func New(name, release, constraint string) (Version, error) {
	p, err := hversion.NewVersion(release)
	if err != nil {
		return nil, err
	}

	var c hversion.Constraints
	if constraint != "" {
		c, err = hversion.NewConstraint(constraint)
		if err != nil {
			return nil, err
		}
	}

	return &ver{
		name:       name,
		release:    release,
		parsed:     p,
		constraint: c,
	}, nil
}

func (v *ver) Name() string    { return v.name }
func (v *ver) Release() string { return v.release }
func (v *ver) String() string  { return v.name + "/" + v.release }

func (v *ver) Accepts(peerRelease string) bool {
	p, err := hversion.NewVersion(peerRelease)
	if err != nil {
		return false
	}

	if v.constraint == nil {
		return true
	}

	return v.constraint.Check(p)
}
