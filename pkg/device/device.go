// Package device exposes the read-only site database for a target device.
// The packing passes only ever query it; nothing here is mutated once the
// database is built.
package device

import (
	"fmt"
)

// Site is one concrete, addressable resource location on the device. The
// package pin is empty for sites that are not bonded out.
type Site struct {
	Name       string
	Type       string
	PackagePin string
}

// Database is the query surface the packing passes need. Sites must return
// the device's native enumeration order and that order must be identical
// across calls: unconstrained pad assignment depends on it for reproducible
// builds.
type Database interface {
	// Name identifies the device (part name).
	Name() string
	// Sites enumerates every site in native device order.
	Sites() []Site
	// SiteByName resolves a site identifier.
	SiteByName(name string) (Site, bool)
	// SiteByPackagePin resolves an external package pin name to its site.
	SiteByPackagePin(pin string) (Site, bool)
}

// MemoryDatabase is the in-memory Database used both by the device file
// loader and directly by tests.
type MemoryDatabase struct {
	name   string
	sites  []Site
	byName map[string]int
	byPin  map[string]int
}

// NewMemoryDatabase creates an empty database for the named device.
func NewMemoryDatabase(name string) *MemoryDatabase {
	return &MemoryDatabase{
		name:   name,
		byName: make(map[string]int),
		byPin:  make(map[string]int),
	}
}

// AddSite appends a site in enumeration order. Site names and package pins
// must be unique across the device.
func (m *MemoryDatabase) AddSite(s Site) error {
	if s.Name == "" {
		return fmt.Errorf("device: site with empty name")
	}
	if _, ok := m.byName[s.Name]; ok {
		return fmt.Errorf("device: duplicate site %s", s.Name)
	}
	if s.PackagePin != "" {
		if _, ok := m.byPin[s.PackagePin]; ok {
			return fmt.Errorf("device: package pin %s bound to more than one site", s.PackagePin)
		}
		m.byPin[s.PackagePin] = len(m.sites)
	}
	m.byName[s.Name] = len(m.sites)
	m.sites = append(m.sites, s)
	return nil
}

// Name implements Database.
func (m *MemoryDatabase) Name() string { return m.name }

// Sites implements Database. The returned slice is in insertion order; the
// caller must not modify it.
func (m *MemoryDatabase) Sites() []Site { return m.sites }

// SiteByName implements Database.
func (m *MemoryDatabase) SiteByName(name string) (Site, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Site{}, false
	}
	return m.sites[i], true
}

// SiteByPackagePin implements Database.
func (m *MemoryDatabase) SiteByPackagePin(pin string) (Site, bool) {
	i, ok := m.byPin[pin]
	if !ok {
		return Site{}, false
	}
	return m.sites[i], true
}
