// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code identifies the kind of a FairdexError.
type Code uint32

// Codes used by this module. Values are equal to their gRPC counterparts.
const (
	OK                 = Code(codes.OK)
	Unknown            = Code(codes.Unknown)
	InvalidArgument    = Code(codes.InvalidArgument)
	FailedPrecondition = Code(codes.FailedPrecondition)
	Internal           = Code(codes.Internal)
	Unavailable        = Code(codes.Unavailable)
	DataLoss           = Code(codes.DataLoss)
)

// String returns the gRPC name of the code.
func (c Code) String() string {
	return codes.Code(c).String()
}

// FairdexError associates an error message with a Code.
type FairdexError interface {
	error
	Code() Code
}

type fairdexError struct {
	code Code
	msg  string
	err  error
}

func (e *fairdexError) Error() string { return e.msg }

func (e *fairdexError) Code() Code { return e.code }

func (e *fairdexError) Unwrap() error { return e.err }

// GRPCStatus lets status.Code and status.FromError understand the error.
func (e *fairdexError) GRPCStatus() *status.Status {
	return status.New(codes.Code(e.code), e.msg)
}

// Errorf creates a FairdexError from the specified code and message. A %w
// verb in format is honoured, so the wrapped error stays reachable through
// errors.Is and errors.As.
func Errorf(code Code, format string, a ...interface{}) error {
	wrapped := fmt.Errorf(format, a...)
	return &fairdexError{code: code, msg: wrapped.Error(), err: errors.Unwrap(wrapped)}
}

// New creates a FairdexError from the specified code and message.
func New(code Code, msg string) error {
	return &fairdexError{code: code, msg: msg}
}

// ErrorCode returns the code of the first FairdexError in err's chain. It
// returns OK for a nil error and Unknown when no coded error is found.
func ErrorCode(err error) Code {
	if err == nil {
		return OK
	}
	var fe FairdexError
	if errors.As(err, &fe) {
		return fe.Code()
	}
	if s, ok := status.FromError(err); ok {
		return Code(s.Code())
	}
	return Unknown
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return ErrorCode(err) == code
}
