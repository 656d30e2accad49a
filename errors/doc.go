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

// Package errors defines an error representation that associates an error
// message to an error code.
//
// Codes share their numeric values with gRPC codes, so errors created here
// can be inspected with status.Code without information loss. The exchange
// code uses a small subset of them:
//
//   - InvalidArgument: bad configuration, such as a sample larger than the
//     subkey universe. Raised before any cryptographic work starts.
//   - Internal: a broken invariant inside the commitment machinery, such as
//     a leaf sequence whose length is not a power of two. Indicates a bug in
//     the caller.
//   - DataLoss: a corrupt off-chain transfer. Kept distinct from
//     cryptographic outcomes so that a damaged file is never mistaken for
//     fraud.
//   - FailedPrecondition: a ledger operation attempted in the wrong contract
//     state.
//   - Unavailable: the ledger could not be reached.
//
// Proof verification failures are not errors at all; they are returned as
// results to the caller.
package errors
