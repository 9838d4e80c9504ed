// Package config holds the CLI configuration types.
package config

import (
	"errors"
	"fmt"

	"github.com/1ureka/propsync/internal/signaling"
)

// Role represents the user's chosen role.
type Role string

const (
	RoleController Role = "controller"
	RoleDevice     Role = "device"
	RoleServe      Role = "serve"
)

// Roles lists every valid role in prompt order.
var Roles = []Role{RoleController, RoleDevice, RoleServe}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrMissingHost = errors.New("missing host")
)

// Config stores all parameters gathered from flags or interactive prompts.
type Config struct {
	Role       Role
	Host       string // Controller, device: peer host or URL to dial
	ListenAddr string // Serve: address for the signaling endpoint
	Stream     bool   // Controller: request streaming once connected
	OfferPath  string // Controller: file holding a remote SDP offer to answer
	Debug      bool
}

// Validate checks that the fields required by the role are present.
func (c *Config) Validate() error {
	if !c.Role.Valid() {
		return fmt.Errorf("%w: %q (must be controller, device or serve)", ErrInvalidRole, c.Role)
	}
	if c.Role == RoleServe {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("%w for %s role", ErrMissingHost, c.Role)
	}
	if _, err := c.URL(); err != nil {
		return err
	}
	return nil
}

// URL returns the signaling endpoint derived from Host.
func (c *Config) URL() (string, error) {
	return signaling.EndpointURL(c.Host)
}
