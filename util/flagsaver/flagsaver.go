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

// Package flagsaver saves and restores the command line around tests that
// parse flags or flag files.
//
// Example:
//
//	func TestFoo(t *testing.T) {
//	  flagsaver.Scoped(t)
//	  // Test code that changes flags or os.Args
//	} // flags and os.Args are reset to their original values here.
package flagsaver

import (
	"flag"
	"os"
	"strings"
	"testing"

	"k8s.io/klog/v2"
)

// Stash holds the state of a FlagSet so that it can be restored at the end
// of a test.
type Stash struct {
	fs            *flag.FlagSet
	name          string
	errorHandling flag.ErrorHandling
	flags         map[string]string
	args          []string
}

// Save captures flag.CommandLine and os.Args.
func Save() *Stash {
	s := SaveSet(flag.CommandLine)
	s.args = append([]string(nil), os.Args...)
	return s
}

// SaveSet captures the value of every flag defined in fs. Flags defined
// later are left alone by Restore.
func SaveSet(fs *flag.FlagSet) *Stash {
	s := &Stash{
		fs:            fs,
		name:          fs.Name(),
		errorHandling: fs.ErrorHandling(),
		flags:         make(map[string]string),
	}
	// log_backtrace_at may hold an empty value that it cannot be set to.
	fs.VisitAll(func(f *flag.Flag) {
		if !strings.HasPrefix(f.Name, "test.") && f.Name != "log_backtrace_at" {
			s.flags[f.Name] = f.Value.String()
		}
	})
	return s
}

// Restore puts back the saved flag values and error handling, and os.Args
// if they were saved.
func (s *Stash) Restore() error {
	s.fs.Init(s.name, s.errorHandling)
	for name, value := range s.flags {
		if err := s.fs.Set(name, value); err != nil {
			return err
		}
	}
	if s.args != nil {
		os.Args = s.args
	}
	return nil
}

// MustRestore calls Restore and exits on failure. Later tests would
// otherwise run with flags in an arbitrary state.
func (s *Stash) MustRestore() {
	if err := s.Restore(); err != nil {
		klog.Exitf("MustRestore(): failed to restore flags: %v", err)
	}
}

// Scoped saves the command line and restores it when t finishes.
func Scoped(t testing.TB) {
	t.Helper()
	s := Save()
	t.Cleanup(func() {
		if err := s.Restore(); err != nil {
			t.Errorf("flagsaver: restoring flags: %v", err)
		}
	})
}
