// Package constraint parses user placement constraint files and applies them
// to a netlist as cell attributes. A constraint file is line-oriented:
//
//	-- board pinout
//	loc clk T14
//	iostandard clk LVCMOS33
//
// "loc" pins a top-level port to a package pin; "iostandard" records the IO
// standard for the pad. Both are stored verbatim as attributes and consumed
// by the IO packing pass.
package constraint

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// Attribute keys stamped onto cells by Apply.
const (
	AttrLOC        = "LOC"
	AttrIOStandard = "IOSTANDARD"
)

// File represents a parsed constraint file.
type File struct {
	Stmts []*Stmt `parser:"@@*"`
}

// Stmt is a single constraint statement.
type Stmt struct {
	Loc   *LocStmt   `parser:"  @@"`
	IOStd *IOStdStmt `parser:"| @@"`
}

// LocStmt pins a top-level port to a package pin.
type LocStmt struct {
	Port string `parser:"KwLoc @Ident"`
	Pin  string `parser:"@Ident"`
}

// IOStdStmt selects the IO standard for a top-level port.
type IOStdStmt struct {
	Port     string `parser:"KwIOStandard @Ident"`
	Standard string `parser:"@Ident"`
}

// Apply stamps every constraint onto the matching cell of the design. A
// constraint naming a cell that does not exist is an error: constraints are
// user input and silently ignoring one hides a real mistake.
func (f *File) Apply(d *netlist.Design) error {
	for _, s := range f.Stmts {
		switch {
		case s.Loc != nil:
			c := d.Cell(s.Loc.Port)
			if c == nil {
				return fmt.Errorf("constraint: loc %s: no top-level port %q in design", s.Loc.Pin, s.Loc.Port)
			}
			c.Attrs[AttrLOC] = s.Loc.Pin
		case s.IOStd != nil:
			c := d.Cell(s.IOStd.Port)
			if c == nil {
				return fmt.Errorf("constraint: iostandard %s: no top-level port %q in design", s.IOStd.Standard, s.IOStd.Port)
			}
			c.Attrs[AttrIOStandard] = s.IOStd.Standard
		}
	}
	return nil
}
