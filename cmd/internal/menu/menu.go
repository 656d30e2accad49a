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

// Package menu runs the interactive command loop of the fairdex binaries.
package menu

import (
	"bufio"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/errors"
	"github.com/fairdex/fairdex/ledger"
	"k8s.io/klog/v2"
)

// Command is one entry of a menu.
type Command int

// Commands either send a ledger operation or query the contract.
const (
	PayWithDescription Command = iota + 1
	GetMasterKey
	RaiseObjection
	RefundToBuyer
	PublishMasterKey
	TransferToSeller
	PublishWrongKey
	PrintState
	PrintBalance
	Quit
)

// Label returns the text shown for c.
func (c Command) Label() string {
	switch c {
	case PayWithDescription:
		return "Pay with Description"
	case GetMasterKey:
		return "Get Master Key from Contract"
	case RaiseObjection:
		return "Raise Objection"
	case RefundToBuyer:
		return "Refund to Buyer"
	case PublishMasterKey:
		return "Publish Master Key"
	case TransferToSeller:
		return "Transfer to Seller"
	case PublishWrongKey:
		return "Publish a Wrong Key"
	case PrintState:
		return "Print State"
	case PrintBalance:
		return "Print Balance"
	case Quit:
		return "Quit"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Operation returns the ledger operation c sends, if any.
func (c Command) Operation() (ledger.Operation, bool) {
	switch c {
	case PayWithDescription:
		return ledger.PayWithDescription, true
	case RaiseObjection:
		return ledger.RaiseObjection, true
	case RefundToBuyer:
		return ledger.RefundToBuyer, true
	case PublishMasterKey:
		return ledger.PublishMasterKey, true
	case TransferToSeller:
		return ledger.TransferToSeller, true
	case PublishWrongKey:
		return ledger.PublishWrongKey, true
	}
	return 0, false
}

// ReceiverCommands is the receiver's menu; choice i+1 selects element i and
// 0 quits.
var ReceiverCommands = []Command{PayWithDescription, GetMasterKey, RaiseObjection, RefundToBuyer, PrintState, PrintBalance}

// SenderCommands is the sender's menu, numbered like ReceiverCommands.
var SenderCommands = []Command{PublishMasterKey, TransferToSeller, PublishWrongKey, PrintState, PrintBalance}

// Handler sends one ledger operation.
type Handler func(context.Context) (common.Hash, error)

// Menu is an interactive loop over a contract.
type Menu struct {
	Title    string
	Commands []Command
	Contract ledger.Contract
	// Handlers must hold an entry for every operation in Commands.
	Handlers map[ledger.Operation]Handler
	// Header lines are printed after the title.
	Header []string
	// OnMasterKey, if set, is called with a master key read from the
	// contract and its result printed.
	OnMasterKey func(fairdex.MasterKey) string
}

func (m *Menu) check() error {
	for _, c := range m.Commands {
		if c == Quit {
			return errors.New(errors.InvalidArgument, "Quit is always choice 0")
		}
		if op, ok := c.Operation(); ok && m.Handlers[op] == nil {
			return errors.Errorf(errors.InvalidArgument, "no handler for %v", op)
		}
	}
	return nil
}

// Run prints the menu to out and executes choices read from in, one per
// line, until Quit, end of input or cancellation of ctx.
func (m *Menu) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := m.check(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.printHeader(ctx, out)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(out, "Enter your choice: ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-readErr
			}
			line = l
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 0 || choice > len(m.Commands) {
			fmt.Fprintf(out, "Invalid choice. Valid choices are 0 to %d.\n\n", len(m.Commands))
			continue
		}
		if choice == 0 {
			fmt.Fprint(out, "Quitting.\n\n")
			return nil
		}
		m.dispatch(ctx, out, m.Commands[choice-1])
	}
}

func (m *Menu) printHeader(ctx context.Context, out io.Writer) {
	fmt.Fprintln(out, "FairDEx: Practical Fair Exchange of Digital Goods")
	fmt.Fprintln(out, m.Title)
	fmt.Fprintln(out)
	for _, h := range m.Header {
		fmt.Fprintln(out, h)
	}
	fmt.Fprintf(out, "State: %v\n\n", ledger.CurrentState(ctx, m.Contract))
	fmt.Fprintln(out, "Commands:")
	for i := 0; i < len(m.Commands); i += 2 {
		if i+1 < len(m.Commands) {
			fmt.Fprintf(out, " [%d] %-35s[%d] %s\n", i+1, m.Commands[i].Label(), i+2, m.Commands[i+1].Label())
		} else {
			fmt.Fprintf(out, " [%d] %s\n", i+1, m.Commands[i].Label())
		}
	}
	fmt.Fprintf(out, " [0] %s\n\n", Quit.Label())
}

func (m *Menu) dispatch(ctx context.Context, out io.Writer, c Command) {
	if op, ok := c.Operation(); ok {
		tx, err := ledger.Execute(ctx, m.Contract, op, m.Handlers[op])
		var refused *ledger.StateError
		switch {
		case err == nil:
			fmt.Fprintf(out, "Message sent to blockchain.\nTxn: %s\n\n", tx.Hex())
		case goerrors.As(err, &refused):
			fmt.Fprintf(out, "This operation can be called only if the state is %v.\n\n", refused.Want)
		default:
			klog.Errorf("%v failed: %v", op, err)
			fmt.Fprintf(out, "Error: %v\n\n", err)
		}
		return
	}

	switch c {
	case GetMasterKey:
		if ledger.CurrentState(ctx, m.Contract) != ledger.Published {
			fmt.Fprint(out, "Master Key: n/a\n\n")
			return
		}
		mk, err := m.Contract.MasterKey(ctx)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			return
		}
		fmt.Fprintf(out, "Master Key: %s\n", mk.Hex())
		if m.OnMasterKey != nil {
			fmt.Fprintln(out, m.OnMasterKey(mk))
		}
		fmt.Fprintln(out)
	case PrintState:
		fmt.Fprintf(out, "State: %v\n\n", ledger.CurrentState(ctx, m.Contract))
	case PrintBalance:
		wei, err := m.Contract.Balance(ctx)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			return
		}
		fmt.Fprintf(out, "Balance: %s ETH\n\n", FormatEther(wei))
	}
}

// FormatEther renders a wei amount in ether with five significant digits.
func FormatEther(wei *big.Int) string {
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
	return eth.Text('g', 5)
}
