package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinUserID = 1
	MaxUserID = 10
)

// ErrInvalidUserID is returned for ids that are not integers in
// [MinUserID, MaxUserID].
var ErrInvalidUserID = errors.New("invalid user id")

// Preference is the remembered query of the widget.
type Preference struct {
	UserID   int  `json:"user_id"`
	Remember bool `json:"remember"`
}

// ParseUserID validates a raw form value.
func ParseUserID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidUserID, s)
	}
	if id < MinUserID || id > MaxUserID {
		return 0, fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidUserID, id, MinUserID, MaxUserID)
	}
	return id, nil
}
