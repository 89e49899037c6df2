package calpreview

import (
	"encoding/json"
	"fmt"
)

// CommandType tags a remote command record.
type CommandType string

// Wire command types consumed from the companion remote control.
const (
	CommandSetPattern       CommandType = "SET_PATTERN"
	CommandAdjustBrightness CommandType = "ADJUST_BRIGHTNESS"
	CommandAdjustContrast   CommandType = "ADJUST_CONTRAST"
	CommandReset            CommandType = "RESET"
)

// Command is one decoded remote message. Delivery is at-most-once and
// may be reordered or duplicated; SET_PATTERN and RESET are naturally
// idempotent, while ADJUST deltas are applied exactly as delivered.
type Command struct {
	Type      CommandType `json:"type"`
	PatternID string      `json:"patternId,omitempty"`
	// Value is the signed delta for ADJUST commands. A pointer so that a
	// missing field can be told apart from an explicit zero.
	Value *int `json:"value,omitempty"`
}

// DecodeCommand parses one JSON command record. It only checks the JSON
// shape; semantic validation (unknown type, missing fields) happens in
// Store.Apply so that malformed commands are dropped with a warning
// rather than surfaced as transport errors.
func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	return cmd, nil
}

// Apply validates and applies a remote command. Malformed commands
// (unknown type, missing field, unknown pattern) are ignored with a
// logged warning; they never crash the store or leave it partially
// updated. Returns whether the command was applied.
func (s *Store) Apply(cmd Command) bool {
	switch cmd.Type {
	case CommandSetPattern:
		spec, err := ParsePattern(cmd.PatternID)
		if err != nil {
			s.logger.Warn("dropping remote command", "type", cmd.Type, "patternId", cmd.PatternID, "err", err)
			return false
		}
		s.SetPattern(spec)
	case CommandAdjustBrightness:
		if cmd.Value == nil {
			s.logger.Warn("dropping remote command: missing value", "type", cmd.Type)
			return false
		}
		s.AdjustBrightness(*cmd.Value)
	case CommandAdjustContrast:
		if cmd.Value == nil {
			s.logger.Warn("dropping remote command: missing value", "type", cmd.Type)
			return false
		}
		s.AdjustContrast(*cmd.Value)
	case CommandReset:
		s.Reset()
	default:
		s.logger.Warn("dropping remote command: unknown type", "type", cmd.Type)
		return false
	}
	return true
}
