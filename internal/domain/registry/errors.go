package registry

import "errors"

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrGuarantorNotFound = errors.New("guarantor not found")
	ErrAgentNotFound     = errors.New("agent not found")
	ErrGroupNotFound     = errors.New("group not found")
)
