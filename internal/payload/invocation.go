// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package payload

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Invocation pairs a command name with its payload, matching documents of the
// form {"command": "add", "payload": [...]}.
type Invocation struct {
	Command string `yaml:"command" json:"command"`
	Payload Value  `yaml:"payload,omitempty" json:"-"`
}

// ParseInvocation decodes a single invocation document.
func ParseInvocation(text string) (Invocation, error) {
	var inv Invocation
	if err := yaml.Unmarshal([]byte(text), &inv); err != nil {
		return Invocation{}, fmt.Errorf("failed to parse invocation: %w", err)
	}
	inv.Command = strings.TrimSpace(inv.Command)
	if inv.Command == "" {
		return Invocation{}, fmt.Errorf("invocation is missing the command field")
	}
	return inv, nil
}

// ParseInvocations decodes a list of invocations, as used by script files.
func ParseInvocations(data []byte) ([]Invocation, error) {
	var invs []Invocation
	if err := yaml.Unmarshal(data, &invs); err != nil {
		return nil, fmt.Errorf("failed to parse invocation list: %w", err)
	}
	for i := range invs {
		invs[i].Command = strings.TrimSpace(invs[i].Command)
		if invs[i].Command == "" {
			return nil, fmt.Errorf("invocation %d is missing the command field", i+1)
		}
	}
	return invs, nil
}
