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

package protocol

// ResponseCode is one of the stable symbolic response codes from §6.
type ResponseCode int64

const (
	Success ResponseCode = iota
	InsufficientClients
	LocalError
	UnknownAuthID
	InvalidCredentials
	UnsupportedAuthType
	UnsupportedClientVersion
	UnsupportedServerVersion
	ClientRejected
)

func (c ResponseCode) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case InsufficientClients:
		return "INSUFFICIENT_CLIENTS"
	case LocalError:
		return "LOCAL_ERROR"
	case UnknownAuthID:
		return "UNKNOWN_AUTH_ID"
	case InvalidCredentials:
		return "INVALID_CREDENTIALS"
	case UnsupportedAuthType:
		return "UNSUPPORTED_AUTH_TYPE"
	case UnsupportedClientVersion:
		return "UNSUPPORTED_CLIENT_VERSION"
	case UnsupportedServerVersion:
		return "UNSUPPORTED_SERVER_VERSION"
	case ClientRejected:
		return "CLIENT_REJECTED"
	default:
		return "UNKNOWN_RESPONSE_CODE"
	}
}

// NonRecoverable reports whether a HelloResponse carrying this code must
// terminate the client-manager outright (§4.2) rather than retry.
func (c ResponseCode) NonRecoverable() bool {
	switch c {
	case UnknownAuthID, InvalidCredentials, UnsupportedAuthType,
		UnsupportedClientVersion, UnsupportedServerVersion, ClientRejected:
		return true
	default:
		return false
	}
}
