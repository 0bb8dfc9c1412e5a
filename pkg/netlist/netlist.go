// Package netlist holds the mutable cell/port/net graph that the packing
// passes rewrite in place. The model is deliberately small: cells own ports,
// ports hold a non-owning reference to at most one net, and nets track their
// driver plus an ordered user list.
package netlist

import (
	"fmt"
	"sort"
)

// Direction describes which way a port faces.
type Direction int

const (
	// DirIn is a cell input.
	DirIn Direction = iota
	// DirOut is a cell output.
	DirOut
	// DirInOut is a bidirectional port (pads and IO buffers).
	DirInOut
)

// String renders the direction in the interchange spelling used by
// provenance attributes.
func (d Direction) String() string {
	switch d {
	case DirOut:
		return "out"
	case DirInOut:
		return "inout"
	default:
		return "in"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "in":
		return DirIn, nil
	case "out":
		return DirOut, nil
	case "inout":
		return DirInOut, nil
	default:
		return DirIn, fmt.Errorf("netlist: unknown direction %q", s)
	}
}

// PortRef names one port of one cell. Nets store these for their driver and
// user bookkeeping.
type PortRef struct {
	Cell *Cell
	Port string
}

// Net is a single electrical net. Users is ordered: entries appear in the
// order the connections were made, which later passes rely on for
// reproducible output.
type Net struct {
	Name   string
	Driver *PortRef
	Users  []PortRef
}

// Port belongs to exactly one cell and references at most one net.
type Port struct {
	Name string
	Dir  Direction
	Net  *Net
}

// Cell is a named, typed netlist cell with a string attribute store. Attrs
// carries both true device attributes (BEL, LOC, IOSTANDARD) and opaque
// metadata blobs.
type Cell struct {
	Name  string
	Type  string
	Ports map[string]*Port
	Attrs map[string]string
}

// AddPort declares a new port on the cell and returns it. Re-declaring an
// existing name returns the existing port unchanged.
func (c *Cell) AddPort(name string, dir Direction) *Port {
	if p, ok := c.Ports[name]; ok {
		return p
	}
	p := &Port{Name: name, Dir: dir}
	c.Ports[name] = p
	return p
}

// Port returns the named port or nil.
func (c *Cell) Port(name string) *Port {
	return c.Ports[name]
}

// Net returns the net connected to the named port, or nil when the port is
// absent or unconnected.
func (c *Cell) Net(port string) *Net {
	p, ok := c.Ports[port]
	if !ok {
		return nil
	}
	return p.Net
}

// Design owns all cells and nets. Newly created cells are staged and stay
// invisible to Cells/CellsOfType until Flush is called, so a pass can build a
// batch of related cells before they show up in iteration.
type Design struct {
	Name string

	cells  map[string]*Cell
	nets   map[string]*Net
	staged []*Cell
}

// NewDesign creates an empty design.
func NewDesign(name string) *Design {
	return &Design{
		Name:  name,
		cells: make(map[string]*Cell),
		nets:  make(map[string]*Net),
	}
}

// CreateCell stages a new, disconnected cell. The cell can be wired up
// immediately but only joins global iteration after the next Flush.
func (d *Design) CreateCell(typ, name string) *Cell {
	c := &Cell{
		Name:  name,
		Type:  typ,
		Ports: make(map[string]*Port),
		Attrs: make(map[string]string),
	}
	d.staged = append(d.staged, c)
	return c
}

// Flush moves all staged cells into the design's cell index. Calling Flush
// with nothing staged is a no-op.
func (d *Design) Flush() {
	for _, c := range d.staged {
		d.cells[c.Name] = c
	}
	d.staged = nil
}

// Cell returns the named cell, or nil. Staged cells are not visible here.
func (d *Design) Cell(name string) *Cell {
	return d.cells[name]
}

// Cells returns all flushed cells sorted by name, so passes iterating the
// whole design behave identically across runs.
func (d *Design) Cells() []*Cell {
	out := make([]*Cell, 0, len(d.cells))
	for _, c := range d.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CellsOfType returns all flushed cells with the given type tag, sorted by
// name.
func (d *Design) CellsOfType(typ string) []*Cell {
	var out []*Cell
	for _, c := range d.Cells() {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// Net returns the named net, or nil.
func (d *Design) Net(name string) *Net {
	return d.nets[name]
}

// EnsureNet returns the named net, creating it when absent.
func (d *Design) EnsureNet(name string) *Net {
	if n, ok := d.nets[name]; ok {
		return n
	}
	n := &Net{Name: name}
	d.nets[name] = n
	return n
}

// RemoveNet deletes a net from the design index. Dangling nets (no users, no
// driver) are never removed implicitly; this is the explicit path.
func (d *Design) RemoveNet(name string) {
	delete(d.nets, name)
}

// Connect attaches the named port of the cell to the net. Output ports become
// the net's driver; input and bidirectional ports are appended to the user
// list. The port must exist and be unconnected.
func (d *Design) Connect(n *Net, c *Cell, port string) error {
	p, ok := c.Ports[port]
	if !ok {
		return fmt.Errorf("netlist: cell %s has no port %s", c.Name, port)
	}
	if p.Net != nil {
		return fmt.Errorf("netlist: port %s.%s already connected to net %s", c.Name, port, p.Net.Name)
	}
	if p.Dir == DirOut {
		if n.Driver != nil {
			return fmt.Errorf("netlist: net %s already driven by %s.%s", n.Name, n.Driver.Cell.Name, n.Driver.Port)
		}
		n.Driver = &PortRef{Cell: c, Port: port}
	} else {
		n.Users = append(n.Users, PortRef{Cell: c, Port: port})
	}
	p.Net = n
	return nil
}

// Disconnect detaches the named port from its net, removing all net-side
// bookkeeping. Absent or already-unconnected ports are a no-op.
func (d *Design) Disconnect(c *Cell, port string) {
	p, ok := c.Ports[port]
	if !ok || p.Net == nil {
		return
	}
	n := p.Net
	if n.Driver != nil && n.Driver.Cell == c && n.Driver.Port == port {
		n.Driver = nil
	}
	for i, u := range n.Users {
		if u.Cell == c && u.Port == port {
			n.Users = append(n.Users[:i], n.Users[i+1:]...)
			break
		}
	}
	p.Net = nil
}

// ReplacePort moves the connection on oldCell.oldPort over to
// newCell.newPort, leaving the old port unconnected. When the old port is
// absent or unconnected this is a no-op, which lets callers move optional
// ports without probing first. The new port is declared on demand with the
// old port's direction.
func (d *Design) ReplacePort(oldCell *Cell, oldPort string, newCell *Cell, newPort string) error {
	op, ok := oldCell.Ports[oldPort]
	if !ok || op.Net == nil {
		return nil
	}
	n := op.Net
	d.Disconnect(oldCell, oldPort)
	newCell.AddPort(newPort, op.Dir)
	return d.Connect(n, newCell, newPort)
}

// RenamePort changes the name of a port on a cell, updating the net-side
// driver and user references in place.
func (d *Design) RenamePort(c *Cell, oldName, newName string) error {
	p, ok := c.Ports[oldName]
	if !ok {
		return fmt.Errorf("netlist: cell %s has no port %s", c.Name, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, exists := c.Ports[newName]; exists {
		return fmt.Errorf("netlist: cell %s already has a port %s", c.Name, newName)
	}
	delete(c.Ports, oldName)
	p.Name = newName
	c.Ports[newName] = p
	if n := p.Net; n != nil {
		if n.Driver != nil && n.Driver.Cell == c && n.Driver.Port == oldName {
			n.Driver.Port = newName
		}
		for i := range n.Users {
			if n.Users[i].Cell == c && n.Users[i].Port == oldName {
				n.Users[i].Port = newName
			}
		}
	}
	return nil
}

// RemoveCell disconnects every port of the named cell and removes it from
// the design atomically. Staged cells are removed from the staging area as
// well.
func (d *Design) RemoveCell(name string) {
	c, ok := d.cells[name]
	if !ok {
		for i, s := range d.staged {
			if s.Name == name {
				c = s
				d.staged = append(d.staged[:i], d.staged[i+1:]...)
				break
			}
		}
		if c == nil {
			return
		}
	}
	for port := range c.Ports {
		d.Disconnect(c, port)
	}
	delete(d.cells, name)
}
