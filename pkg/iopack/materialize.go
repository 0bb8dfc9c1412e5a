package iopack

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// PadBuf pairs a materialized pad cell with the pad-facing port of its IO
// buffer. The resolver binds sites onto the pad; the decomposition engine
// works on the buffer cell.
type PadBuf struct {
	Pad *netlist.Cell
	Buf netlist.PortRef
}

// BufferInserter turns one placeholder top-level IO cell into a pad cell
// plus a buffer cell wired between the pad and the internal net. The
// placeholder is consumed. Implementations stage new cells on the design;
// the pass flushes once after all placeholders are processed.
type BufferInserter interface {
	Insert(d *netlist.Design, placeholder *netlist.Cell) (PadBuf, error)
}

// DefaultInserter is the stock BufferInserter. It reuses an IO buffer the
// user already instantiated on the boundary net when one is present, and
// synthesizes a plain elementary buffer otherwise.
type DefaultInserter struct{}

// Insert implements BufferInserter.
func (DefaultInserter) Insert(d *netlist.Design, ph *netlist.Cell) (PadBuf, error) {
	switch ph.Type {
	case TypeTopIn:
		return insertBoundary(d, ph, "O", shapeInput)
	case TypeTopOut:
		return insertBoundary(d, ph, "I", shapeOutput)
	case TypeTopInOut:
		return insertBoundary(d, ph, "IO", shapeBidir)
	default:
		return PadBuf{}, fmt.Errorf("iopack: cell %q is not a top-level IO placeholder", ph.Name)
	}
}

// insertBoundary handles one placeholder. The placeholder's single port
// names the boundary net; any user-instantiated buffer on that net is
// adopted, otherwise an elementary buffer is synthesized around a fresh pad
// net.
func insertBoundary(d *netlist.Design, ph *netlist.Cell, phPort string, shape macroShape) (PadBuf, error) {
	n := ph.Net(phPort)
	if n == nil {
		return PadBuf{}, fmt.Errorf("iopack: top-level IO %q has no net on port %s", ph.Name, phPort)
	}

	pad := d.CreateCell(TypePad, ph.Name+"$pad")
	pad.AddPort("PAD", netlist.DirInOut)
	for _, key := range []string{AttrLOC, AttrIOStandard, AttrBEL} {
		if v, ok := ph.Attrs[key]; ok {
			pad.Attrs[key] = v
		}
	}

	if buf, ok := findBoundaryBuffer(n, ph, shape); ok {
		d.RemoveCell(ph.Name)
		if err := d.Connect(n, pad, "PAD"); err != nil {
			return PadBuf{}, err
		}
		return PadBuf{Pad: pad, Buf: buf}, nil
	}

	// No user buffer on the boundary net: synthesize an elementary one
	// between a fresh pad net and the internal net.
	d.RemoveCell(ph.Name)
	padNet := d.EnsureNet(ph.Name + "$pad_net")
	if err := d.Connect(padNet, pad, "PAD"); err != nil {
		return PadBuf{}, err
	}

	switch shape {
	case shapeInput:
		buf := d.CreateCell(TypeIBUF, ph.Name+"$ibuf")
		buf.AddPort("I", netlist.DirIn)
		buf.AddPort("O", netlist.DirOut)
		if err := d.Connect(padNet, buf, "I"); err != nil {
			return PadBuf{}, err
		}
		if err := d.Connect(n, buf, "O"); err != nil {
			return PadBuf{}, err
		}
		return PadBuf{Pad: pad, Buf: netlist.PortRef{Cell: buf, Port: "I"}}, nil
	case shapeOutput:
		buf := d.CreateCell(TypeOBUF, ph.Name+"$obuf")
		buf.AddPort("I", netlist.DirIn)
		buf.AddPort("O", netlist.DirOut)
		if err := d.Connect(n, buf, "I"); err != nil {
			return PadBuf{}, err
		}
		if err := d.Connect(padNet, buf, "O"); err != nil {
			return PadBuf{}, err
		}
		return PadBuf{Pad: pad, Buf: netlist.PortRef{Cell: buf, Port: "O"}}, nil
	default:
		buf := d.CreateCell(TypeIOBUF, ph.Name+"$iobuf")
		buf.AddPort("I", netlist.DirIn)
		buf.AddPort("O", netlist.DirOut)
		buf.AddPort("T", netlist.DirIn)
		buf.AddPort("IO", netlist.DirInOut)
		if err := d.Connect(padNet, buf, "IO"); err != nil {
			return PadBuf{}, err
		}
		if err := d.Connect(n, buf, "O"); err != nil {
			return PadBuf{}, err
		}
		return PadBuf{Pad: pad, Buf: netlist.PortRef{Cell: buf, Port: "IO"}}, nil
	}
}

// findBoundaryBuffer scans the boundary net for an IO buffer the user
// already placed: an input-shape macro reached through its I port, an
// output-shape macro reached through its O port, or a bidirectional macro
// through IO.
func findBoundaryBuffer(n *netlist.Net, ph *netlist.Cell, shape macroShape) (netlist.PortRef, bool) {
	match := func(ref netlist.PortRef) bool {
		if ref.Cell == ph {
			return false
		}
		class, ok := macroClasses[ref.Cell.Type]
		if !ok {
			return false
		}
		switch {
		case class.shape == shapeBidir && ref.Port == "IO":
			return true
		case shape == shapeInput && class.shape == shapeInput && ref.Port == "I":
			return true
		case shape == shapeOutput && class.shape == shapeOutput && ref.Port == "O":
			return true
		}
		return false
	}

	if n.Driver != nil && match(*n.Driver) {
		return *n.Driver, true
	}
	for _, u := range n.Users {
		if match(u) {
			return u, true
		}
	}
	return netlist.PortRef{}, false
}
