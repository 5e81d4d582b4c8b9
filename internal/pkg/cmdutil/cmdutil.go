/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cmdutil resolves command-line parameters that may be given either
// as a flag or as an environment variable. The flag takes precedence.
package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// GetUserSetVarFromString returns the value of the given parameter from the command-line
// flag or, if the flag is not set, from the environment variable.
func GetUserSetVarFromString(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf("get flag %s: %w", flagName, err)
		}

		if value == "" {
			return "", fmt.Errorf("%s value is empty", flagName)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	switch {
	case !isSet && !isOptional:
		return "", unsetError(flagName, envKey)
	case isSet && value == "" && !isOptional:
		return "", fmt.Errorf("%s value is empty", envKey)
	default:
		return value, nil
	}
}

// GetUserSetOptionalVarFromString returns the value of the given optional parameter from
// the command-line flag or environment variable. Returns "" if neither is set.
func GetUserSetOptionalVarFromString(cmd *cobra.Command, flagName, envKey string) string {
	value, _ := GetUserSetVarFromString(cmd, flagName, envKey, true) //nolint:errcheck

	return value
}

// GetUserSetVarFromArrayString returns the values of the given repeatable parameter from
// the command-line flag or, if the flag is not set, from the comma-separated environment
// variable.
func GetUserSetVarFromArrayString(cmd *cobra.Command, flagName, envKey string, isOptional bool) ([]string, error) {
	if cmd.Flags().Changed(flagName) {
		values, err := cmd.Flags().GetStringArray(flagName)
		if err != nil {
			return nil, fmt.Errorf("get flag %s: %w", flagName, err)
		}

		if len(values) == 0 {
			return nil, fmt.Errorf("%s value is empty", flagName)
		}

		return values, nil
	}

	value, isSet := os.LookupEnv(envKey)

	switch {
	case !isSet && !isOptional:
		return nil, unsetError(flagName, envKey)
	case isSet && value == "" && !isOptional:
		return nil, fmt.Errorf("%s value is empty", envKey)
	case value == "":
		return []string{}, nil
	default:
		return strings.Split(value, ","), nil
	}
}

// GetUserSetOptionalVarFromArrayString returns the values of the given optional repeatable
// parameter from the command-line flag or environment variable. Returns an empty slice if
// neither is set.
func GetUserSetOptionalVarFromArrayString(cmd *cobra.Command, flagName, envKey string) []string {
	values, _ := GetUserSetVarFromArrayString(cmd, flagName, envKey, true) //nolint:errcheck

	return values
}

func unsetError(flagName, envKey string) error {
	return fmt.Errorf("neither %s (command line flag) nor %s (environment variable) have been set",
		flagName, envKey)
}
