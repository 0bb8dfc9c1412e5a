package iopack

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// bidirDesign builds a top-level inout port wired through a user-placed
// IOBUF_DCIEN carrying every auxiliary control net the variant supports.
func bidirDesign(t *testing.T) *netlist.Design {
	t.Helper()
	d := netlist.NewDesign("top")

	ph := d.CreateCell(TypeTopInOut, "dio")
	ph.AddPort("IO", netlist.DirInOut)

	iob := d.CreateCell(TypeIOBUFDCIEn, "iob0")
	iob.AddPort("I", netlist.DirIn)
	iob.AddPort("O", netlist.DirOut)
	iob.AddPort("T", netlist.DirIn)
	iob.AddPort("IO", netlist.DirInOut)
	iob.AddPort("DCITERMDISABLE", netlist.DirIn)
	iob.AddPort("IBUFDISABLE", netlist.DirIn)
	d.Flush()

	connect := func(net string, c *netlist.Cell, port string) {
		if err := d.Connect(d.EnsureNet(net), c, port); err != nil {
			t.Fatalf("connect %s.%s: %v", c.Name, port, err)
		}
	}
	connect("dio", ph, "IO")
	connect("dio", iob, "IO")
	connect("dout", iob, "I")
	connect("din", iob, "O")
	connect("t_en", iob, "T")
	connect("term_dis", iob, "DCITERMDISABLE")
	connect("ib_dis", iob, "IBUFDISABLE")
	return d
}

func TestPackSingleInput(t *testing.T) {
	d := netlist.NewDesign("top")
	inputPort(t, d, "clk")
	d.Flush()

	p := Packer{Design: d, Device: testDevice(t, 1)}
	if err := p.Run(); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	pads := d.CellsOfType(TypePad)
	if len(pads) != 1 {
		t.Fatalf("expected 1 pad, got %d", len(pads))
	}
	pad := pads[0]
	if pad.Attrs[AttrBEL] != "IOB_X0Y0/PAD" {
		t.Fatalf("pad bound to %s", pad.Attrs[AttrBEL])
	}

	inbufs := d.CellsOfType(TypeIOBInbuf)
	if len(inbufs) != 1 {
		t.Fatalf("expected 1 input buffer, got %d", len(inbufs))
	}
	buf := inbufs[0]
	if got := buf.Attrs[AttrBEL]; got != "IOB_X0Y0/IOB33/INBUF_EN" {
		t.Fatalf("input buffer bound to %s", got)
	}
	if buf.Net("PAD") == nil || buf.Net("PAD") != pad.Net("PAD") {
		t.Fatalf("input buffer not on the pad net")
	}
	if buf.Net("OUT") == nil || buf.Net("OUT").Name != "clk" {
		t.Fatalf("input buffer output not on the original net")
	}
	// No macro types survive the pass.
	for _, c := range d.Cells() {
		if IsMacro(c.Type) {
			t.Fatalf("macro cell %s (%s) survived packing", c.Name, c.Type)
		}
	}
}

func TestDecomposeBidir(t *testing.T) {
	d := bidirDesign(t)
	p := Packer{Design: d, Device: testDevice(t, 1)}
	if err := p.Run(); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	if d.Cell("iob0") != nil {
		t.Fatalf("macro cell still present")
	}
	ibuf := d.Cell("iob0$ibuf")
	obuf := d.Cell("iob0$obuft")
	if ibuf == nil || obuf == nil {
		t.Fatalf("expected two sub-cells, got ibuf=%v obuf=%v", ibuf, obuf)
	}
	if ibuf.Type != TypeIOBInbuf {
		t.Fatalf("input half has type %s", ibuf.Type)
	}
	if obuf.Type != TypeIOBOutbuf {
		t.Fatalf("output half has type %s", obuf.Type)
	}
	if ibuf.Attrs[AttrBEL] != "IOB_X0Y0/IOB33/INBUF_EN" || obuf.Attrs[AttrBEL] != "IOB_X0Y0/IOB33/OUTBUF" {
		t.Fatalf("sub-cells not bound to the parent site: %s / %s", ibuf.Attrs[AttrBEL], obuf.Attrs[AttrBEL])
	}

	// Connectivity restricted to the macro's nets must be preserved.
	wantNets := map[string]string{
		"PAD":         "dio",
		"OUT":         "din",
		"IBUFDISABLE": "ib_dis",
	}
	for port, net := range wantNets {
		if got := ibuf.Net(port); got == nil || got.Name != net {
			t.Fatalf("input half port %s: expected net %s, got %v", port, net, got)
		}
	}
	wantNets = map[string]string{
		"IN":             "dout",
		"OUT":            "dio",
		"TRI":            "t_en",
		"DCITERMDISABLE": "term_dis",
	}
	for port, net := range wantNets {
		if got := obuf.Net(port); got == nil || got.Name != net {
			t.Fatalf("output half port %s: expected net %s, got %v", port, net, got)
		}
	}

	// The termination-disable control moves, it is never duplicated onto
	// the input half.
	if ibuf.Port("DCITERMDISABLE") != nil {
		t.Fatalf("DCITERMDISABLE duplicated onto the input half")
	}
	if obuf.Port("IBUFDISABLE") != nil {
		t.Fatalf("IBUFDISABLE duplicated onto the output half")
	}
}

func TestBidirProvenance(t *testing.T) {
	d := bidirDesign(t)
	p := Packer{Design: d, Device: testDevice(t, 1)}
	if err := p.Run(); err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	ibuf := d.Cell("iob0$ibuf")
	obuf := d.Cell("iob0$obuft")

	for _, sc := range []*netlist.Cell{ibuf, obuf} {
		if got := sc.Attrs[AttrOrigMacro]; got != TypeIOBUFDCIEn {
			t.Fatalf("%s: origin attribute %q", sc.Name, got)
		}
	}

	// Provenance keys use the sub-cell port names at decomposition time,
	// before technology mapping renames them.
	cases := []struct {
		cell *netlist.Cell
		key  string
		want []MacroPort
	}{
		{ibuf, AttrMacroPortsPrefix + "I", []MacroPort{{Name: "IO", Dir: netlist.DirInOut}}},
		{ibuf, AttrMacroPortsPrefix + "O", []MacroPort{{Name: "O", Dir: netlist.DirOut}}},
		{ibuf, AttrMacroPortsPrefix + "IBUFDISABLE", []MacroPort{{Name: "IBUFDISABLE", Dir: netlist.DirIn}}},
		{obuf, AttrMacroPortsPrefix + "I", []MacroPort{{Name: "I", Dir: netlist.DirIn}}},
		{obuf, AttrMacroPortsPrefix + "O", []MacroPort{{Name: "IO", Dir: netlist.DirInOut}}},
		{obuf, AttrMacroPortsPrefix + "T", []MacroPort{{Name: "T", Dir: netlist.DirIn}}},
	}
	for _, c := range cases {
		raw, ok := c.cell.Attrs[c.key]
		if !ok {
			t.Fatalf("%s: missing attribute %s", c.cell.Name, c.key)
		}
		ports, err := ParseMacroPorts(raw)
		if err != nil {
			t.Fatalf("%s %s: %v", c.cell.Name, c.key, err)
		}
		if len(ports) != len(c.want) {
			t.Fatalf("%s %s: expected %d entries, got %d", c.cell.Name, c.key, len(c.want), len(ports))
		}
		for i := range ports {
			if ports[i] != c.want[i] {
				t.Fatalf("%s %s entry %d: expected %+v, got %+v", c.cell.Name, c.key, i, c.want[i], ports[i])
			}
		}
	}
}

func TestProvenanceFormatRoundTrip(t *testing.T) {
	in := []MacroPort{
		{Name: "IO", Dir: netlist.DirInOut},
		{Name: "O", Dir: netlist.DirOut},
		{Name: "T", Dir: netlist.DirIn},
	}
	s := FormatMacroPorts(in)
	if s != "IO,inout;O,out;T,in" {
		t.Fatalf("unexpected serialization %q", s)
	}
	out, err := ParseMacroPorts(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d entries, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("entry %d: %+v != %+v", i, out[i], in[i])
		}
	}
	if _, err := ParseMacroPorts("garbage"); err == nil {
		t.Fatalf("malformed entry accepted")
	}
}

func TestMissingPadBinding(t *testing.T) {
	d := netlist.NewDesign("top")
	iob := d.CreateCell(TypeIBUF, "buf0")
	iob.AddPort("I", netlist.DirIn)
	iob.AddPort("O", netlist.DirOut)
	d.Flush()
	if err := d.Connect(d.EnsureNet("pin"), iob, "I"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	// Decompose directly: the pad net has no bound PAD cell on it.
	p := Packer{Design: d, Device: testDevice(t, 1)}
	err := p.decompose(iob)
	var me *MissingPadBindingError
	if !errors.As(err, &me) {
		t.Fatalf("expected MissingPadBindingError, got %v", err)
	}
	if me.Net != "pin" {
		t.Fatalf("error names net %q", me.Net)
	}
}

func TestMissingRequiredPort(t *testing.T) {
	d := netlist.NewDesign("top")
	iob := d.CreateCell(TypeIOBUF, "iob0")
	iob.AddPort("I", netlist.DirIn)
	iob.AddPort("O", netlist.DirOut)
	d.Flush()

	p := Packer{Design: d, Device: testDevice(t, 1)}
	err := p.decompose(iob)
	var pe *MissingPortError
	if !errors.As(err, &pe) {
		t.Fatalf("expected MissingPortError, got %v", err)
	}
	if pe.Cell != "iob0" || pe.Port != "IO" {
		t.Fatalf("error misses offender: %+v", pe)
	}
}
