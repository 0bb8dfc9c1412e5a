package iopack

import "fmt"

// The pass has three user-visible fatal conditions. Each carries the
// offending entity so callers can report it without string matching; all of
// them abort the whole pass.

// UnresolvedLocationError reports a location constraint naming a package pin
// the device does not have.
type UnresolvedLocationError struct {
	Pad      string
	Location string
}

func (e *UnresolvedLocationError) Error() string {
	return fmt.Sprintf("iopack: unable to constrain IO %q, device does not have a pin named %q", e.Pad, e.Location)
}

// InsufficientIOResourcesError reports that the device ran out of free
// bondable pad sites before every unconstrained pad was placed.
type InsufficientIOResourcesError struct {
	Pad       string
	Needed    int
	Available int
}

func (e *InsufficientIOResourcesError) Error() string {
	return fmt.Sprintf("iopack: unable to place IO %q, device has %d free pad sites for %d unconstrained IOs", e.Pad, e.Available, e.Needed)
}

// MissingPadBindingError reports a macro whose pad net has no site-bound pad
// cell. The resolver binds every pad before decomposition runs, so hitting
// this means the pass precondition was violated.
type MissingPadBindingError struct {
	Net string
}

func (e *MissingPadBindingError) Error() string {
	return fmt.Sprintf("iopack: can't find a bound PAD for net %q", e.Net)
}

// MissingPortError reports a macro that lacks a port its type requires.
type MissingPortError struct {
	Cell string
	Port string
}

func (e *MissingPortError) Error() string {
	return fmt.Sprintf("iopack: macro %q has no connection on required port %q", e.Cell, e.Port)
}
