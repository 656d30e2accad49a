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
	"io"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodes(t *testing.T) {
	tests := []struct {
		got  Code
		want codes.Code
	}{
		{got: OK, want: codes.OK},
		{got: Unknown, want: codes.Unknown},
		{got: InvalidArgument, want: codes.InvalidArgument},
		{got: FailedPrecondition, want: codes.FailedPrecondition},
		{got: Internal, want: codes.Internal},
		{got: Unavailable, want: codes.Unavailable},
		{got: DataLoss, want: codes.DataLoss},
	}
	for _, test := range tests {
		if uint64(test.got) != uint64(test.want) {
			t.Errorf("got = %v, want = %v", test.got, test.want)
		}
	}
}

func TestErrorf(t *testing.T) {
	tests := []struct {
		code    Code
		msg     string
		param   string
		wantMsg string
	}{
		{code: InvalidArgument, msg: "depth: %v", param: "15", wantMsg: "depth: 15"},
		{code: DataLoss, msg: "line %v", param: "3", wantMsg: "line 3"},
	}
	for _, test := range tests {
		err := Errorf(test.code, test.msg, test.param)
		assertError(t, err, test.code, test.wantMsg)
	}
}

func TestNew(t *testing.T) {
	err := New(Internal, "odd leaf count")
	assertError(t, err, Internal, "odd leaf count")
}

func TestErrorfWraps(t *testing.T) {
	err := Errorf(DataLoss, "reading offchain file: %w", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("errors.Is(%v, io.ErrUnexpectedEOF) = false, want true", err)
	}
	if got, want := ErrorCode(err), DataLoss; got != want {
		t.Errorf("ErrorCode() = %v, want %v", got, want)
	}
}

func TestErrorCode(t *testing.T) {
	for _, tc := range []struct {
		desc string
		err  error
		want Code
	}{
		{desc: "nil", err: nil, want: OK},
		{desc: "plain", err: errors.New("boom"), want: Unknown},
		{desc: "coded", err: New(FailedPrecondition, "wrong state"), want: FailedPrecondition},
		{desc: "wrapped", err: fmt.Errorf("outer: %w", New(InvalidArgument, "inner")), want: InvalidArgument},
		{desc: "grpc", err: status.Error(codes.Unavailable, "down"), want: Unavailable},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			if got := ErrorCode(tc.err); got != tc.want {
				t.Errorf("ErrorCode(%v) = %v, want %v", tc.err, got, tc.want)
			}
			if !Is(tc.err, tc.want) {
				t.Errorf("Is(%v, %v) = false, want true", tc.err, tc.want)
			}
		})
	}
}

func TestGRPCStatus(t *testing.T) {
	err := Errorf(Internal, "leaf count %d is not a power of two", 3)
	if got, want := status.Code(err), codes.Internal; got != want {
		t.Errorf("status.Code() = %v, want %v", got, want)
	}
}

func assertError(t *testing.T, err error, wantCode Code, wantMsg string) {
	t.Helper()
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %v, want = %v", got, wantMsg)
	}
	ferr, ok := err.(FairdexError)
	if !ok {
		t.Errorf("err is not a FairdexError: %T", err)
		return
	}
	if got := ferr.Code(); got != wantCode {
		t.Errorf("Code() = %v, want = %v", got, wantCode)
	}
}
