// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mtd

import (
	"errors"
	"fmt"

	"github.com/luxfi/zkmtd/epoch"
)

var (
	ErrGenerationFailed = errors.New("mtd: parameter generation failed: empty seed")
	ErrManagerClosed    = errors.New("mtd: manager closed")
)

// InvalidEpochError reports an epoch transition the manager refuses to make.
type InvalidEpochError struct {
	Current epoch.Epoch
	Reason  string
}

func (e *InvalidEpochError) Error() string {
	return fmt.Sprintf("mtd: invalid epoch (current %d): %s", e.Current, e.Reason)
}

// Error reports any other manager-level failure. The message carries only a
// coarse category, never key material.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "mtd: " + e.Reason
}
