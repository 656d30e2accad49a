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

// Package ledger is the boundary to the fair exchange contract: its state
// machine, the operations each party may send and an Ethereum client.
package ledger

import (
	"context"
	"fmt"

	"github.com/fairdex/fairdex/errors"
	"k8s.io/klog/v2"
)

// State is the lifecycle state of the exchange contract.
type State int

// Inactive is never stored by the contract. It stands for a contract that
// could not be read.
const (
	Inactive State = iota
	Created
	Paid
	Published
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Created:
		return "Created"
	case Paid:
		return "Paid"
	case Published:
		return "Published"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StateFromContract maps the contract's state enum, 0 for Created through 2
// for Published, onto State.
func StateFromContract(v uint8) (State, error) {
	switch v {
	case 0:
		return Created, nil
	case 1:
		return Paid, nil
	case 2:
		return Published, nil
	}
	return Inactive, errors.Errorf(errors.Internal, "unknown contract state %d", v)
}

// CurrentState reads the state of c, reporting any failure as Inactive.
func CurrentState(ctx context.Context, c Contract) State {
	InitMetrics(nil)
	s, err := c.State(ctx)
	if err != nil {
		klog.Warningf("Reading contract state: %v", err)
		s = Inactive
	}
	stateGauge.Set(float64(s))
	return s
}
