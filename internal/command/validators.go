// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/wbdctl/internal/huc"
	"github.com/staranto/wbdctl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// OneOfValidator accepts only the listed values.
func OneOfValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		if !slices.Contains(valid, value.(string)) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

func OutputValidator(value any) error {
	return OneOfValidator(output.Formats()...)(value)
}

// LevelValidator accepts the even levels 2 through 16, as 12, hu12 or
// HUC12.
func LevelValidator(value any) error {
	_, err := huc.Parse(value.(string))
	return err
}

// RegionValidator accepts a two digit HU2 region code.
func RegionValidator(value any) error {
	_, err := huc.DatasetName(value.(string))
	return err
}

// HoursValidator rejects negative ages.
func HoursValidator(value any) error {
	if value.(int) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// WatershedValidator accepts an empty value or a string of digits.
func WatershedValidator(value any) error {
	for _, r := range value.(string) {
		if r < '0' || r > '9' {
			return errors.New("must be digits only")
		}
	}
	return nil
}
