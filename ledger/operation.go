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

package ledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fairdex/fairdex/errors"
	"k8s.io/klog/v2"
)

// Operation is a state-changing call one of the parties sends to the
// contract.
type Operation int

// Operations sent by the receiver (buyer) and the sender (seller).
const (
	PayWithDescription Operation = iota + 1
	RaiseObjection
	RefundToBuyer
	PublishMasterKey
	// PublishWrongKey publishes a key other than the committed master key.
	// It exists to demonstrate the objection path.
	PublishWrongKey
	TransferToSeller
)

// Operations lists every Operation.
func Operations() []Operation {
	return []Operation{PayWithDescription, RaiseObjection, RefundToBuyer, PublishMasterKey, PublishWrongKey, TransferToSeller}
}

func (o Operation) String() string {
	switch o {
	case PayWithDescription:
		return "PayWithDescription"
	case RaiseObjection:
		return "RaiseObjection"
	case RefundToBuyer:
		return "RefundToBuyer"
	case PublishMasterKey:
		return "PublishMasterKey"
	case PublishWrongKey:
		return "PublishWrongKey"
	case TransferToSeller:
		return "TransferToSeller"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// RequiredState returns the contract state in which o may be sent, or
// Inactive for an unknown operation.
func (o Operation) RequiredState() State {
	switch o {
	case PayWithDescription:
		return Created
	case RaiseObjection, TransferToSeller:
		return Published
	case RefundToBuyer, PublishMasterKey, PublishWrongKey:
		return Paid
	}
	return Inactive
}

// StateError reports an operation refused before sending because the
// contract is in the wrong state.
type StateError struct {
	Op        Operation
	Want, Got State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%v can be called only if the state is %v, contract is %v", e.Op, e.Want, e.Got)
}

// Execute runs fn if the contract is in the state op requires. Otherwise, or
// if the state cannot be read, nothing is sent and a FailedPrecondition
// error is returned.
func Execute(ctx context.Context, c Contract, op Operation, fn func(context.Context) (common.Hash, error)) (common.Hash, error) {
	want := op.RequiredState()
	if want == Inactive {
		return common.Hash{}, errors.Errorf(errors.InvalidArgument, "unknown operation %v", op)
	}
	InitMetrics(nil)
	if got := CurrentState(ctx, c); got != want {
		operations.Inc(op.String(), resultRefused)
		return common.Hash{}, errors.Errorf(errors.FailedPrecondition, "%w", &StateError{Op: op, Want: want, Got: got})
	}
	tx, err := fn(ctx)
	if err != nil {
		operations.Inc(op.String(), resultFailed)
		return common.Hash{}, fmt.Errorf("%v: %w", op, err)
	}
	operations.Inc(op.String(), resultSent)
	klog.Infof("%v sent in transaction %v", op, tx.Hex())
	return tx, nil
}
