package iopack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// IO primitives on this device family are macros that expand to more than
// one BEL. The macro hierarchy must be reconstructible later during
// interchange conversion (strict downstream tools auto-transform some
// primitives otherwise), so decomposition records provenance attributes on
// every sub-cell of a bidirectional macro.

// origPort snapshots one macro port before any rewiring starts.
type origPort struct {
	name string
	dir  netlist.Direction
	net  *netlist.Net
}

// padSite finds the site-bound pad cell on the macro's external net and
// returns its site name. Pads are bound by the resolver before
// decomposition runs; not finding one is fatal.
func (p *Packer) padSite(n *netlist.Net) (string, error) {
	for _, u := range n.Users {
		if u.Cell.Type == TypePad {
			if bel, ok := u.Cell.Attrs[AttrBEL]; ok {
				return siteOfBEL(bel), nil
			}
		}
	}
	return "", &MissingPadBindingError{Net: n.Name}
}

func subCellName(macroName, suffix string) string {
	return macroName + "$" + strings.ToLower(suffix)
}

// decompose replaces one composite IO macro with elementary primitives
// bound to sub-locations of the pad's site, then removes the macro.
func (p *Packer) decompose(macro *netlist.Cell) error {
	class, ok := macroClasses[macro.Type]
	if !ok {
		return fmt.Errorf("iopack: cell %q has unhandled IO buffer type %s", macro.Name, macro.Type)
	}
	d := p.Design
	bidir := class.shape == shapeBidir

	// Snapshot before rewiring: provenance is computed against the macro's
	// original connections.
	var orig []origPort
	for name, port := range macro.Ports {
		orig = append(orig, origPort{name: name, dir: port.Dir, net: port.Net})
	}
	sort.Slice(orig, func(i, j int) bool { return orig[i].name < orig[j].name })

	var subcells []*netlist.Cell

	if class.shape == shapeInput || bidir {
		padPort := "I"
		if bidir {
			padPort = "IO"
		}
		padNet := macro.Net(padPort)
		if padNet == nil {
			return &MissingPortError{Cell: macro.Name, Port: padPort}
		}
		site, err := p.padSite(padNet)
		if err != nil {
			return err
		}
		if !bidir {
			d.Disconnect(macro, "I")
		}
		topOut := macro.Net("O")
		d.Disconnect(macro, "O")

		ibuf := d.CreateCell(class.inputElem, subCellName(macro.Name, "IBUF"))
		ibuf.AddPort("I", netlist.DirIn)
		ibuf.AddPort("O", netlist.DirOut)
		if err := d.Connect(padNet, ibuf, "I"); err != nil {
			return err
		}
		if topOut != nil {
			if err := d.Connect(topOut, ibuf, "O"); err != nil {
				return err
			}
		}
		ibuf.Attrs[AttrBEL] = site + belSuffixInbuf
		if err := d.ReplacePort(macro, "IBUFDISABLE", ibuf, "IBUFDISABLE"); err != nil {
			return err
		}
		if err := d.ReplacePort(macro, "INTERMDISABLE", ibuf, "INTERMDISABLE"); err != nil {
			return err
		}
		if bidir {
			subcells = append(subcells, ibuf)
		}
	}

	if class.shape == shapeOutput || bidir {
		padPort := "O"
		if bidir {
			padPort = "IO"
		}
		padNet := macro.Net(padPort)
		if padNet == nil {
			return &MissingPortError{Cell: macro.Name, Port: padPort}
		}
		site, err := p.padSite(padNet)
		if err != nil {
			return err
		}
		d.Disconnect(macro, padPort)
		inNet := macro.Net("I")
		tNet := macro.Net("T")

		suffix := "OBUF"
		if bidir || macro.Type == TypeOBUFT {
			suffix = "OBUFT"
		}
		obuf := d.CreateCell(class.outputElem, subCellName(macro.Name, suffix))
		obuf.AddPort("I", netlist.DirIn)
		obuf.AddPort("O", netlist.DirOut)
		if class.outputElem != TypeOBUF {
			obuf.AddPort("T", netlist.DirIn)
		}
		if inNet != nil {
			if err := d.Connect(inNet, obuf, "I"); err != nil {
				return err
			}
		}
		if err := d.Connect(padNet, obuf, "O"); err != nil {
			return err
		}
		if tNet != nil {
			if err := d.Connect(tNet, obuf, "T"); err != nil {
				return err
			}
		}
		obuf.Attrs[AttrBEL] = site + belSuffixOutbuf
		if err := d.ReplacePort(macro, "DCITERMDISABLE", obuf, "DCITERMDISABLE"); err != nil {
			return err
		}
		if bidir {
			subcells = append(subcells, obuf)
		}
	}

	for _, sc := range subcells {
		sc.Attrs[AttrOrigMacro] = macro.Type
		names := make([]string, 0, len(sc.Ports))
		for name := range sc.Ports {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			port := sc.Ports[name]
			if port.Net == nil {
				continue
			}
			var ports []MacroPort
			for _, op := range orig {
				if op.net != nil && op.net == port.Net {
					ports = append(ports, MacroPort{Name: op.name, Dir: op.dir})
				}
			}
			if len(ports) > 0 {
				sc.Attrs[AttrMacroPortsPrefix+name] = FormatMacroPorts(ports)
			}
		}
	}

	d.RemoveCell(macro.Name)
	return nil
}
