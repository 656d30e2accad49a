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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fairdex/fairdex"
)

// Contract is the view one party has of the exchange contract. Transactions
// return the hash they were sent with; they are not awaited.
type Contract interface {
	// State returns the current contract state. An unreachable ledger is an
	// Unavailable error.
	State(ctx context.Context) (State, error)
	// MasterKey returns the published master key. It is a FailedPrecondition
	// error unless the state is Published.
	MasterKey(ctx context.Context) (fairdex.MasterKey, error)
	// Balance returns the party's account balance in wei.
	Balance(ctx context.Context) (*big.Int, error)

	PayWithDescription(ctx context.Context, root fairdex.Hash) (common.Hash, error)
	RaiseObjection(ctx context.Context, index0 uint64, subkey0 fairdex.Subkey, proof [][32]byte) (common.Hash, error)
	RefundToBuyer(ctx context.Context) (common.Hash, error)
	PublishMasterKey(ctx context.Context, key fairdex.MasterKey) (common.Hash, error)
	TransferToSeller(ctx context.Context) (common.Hash, error)
}
