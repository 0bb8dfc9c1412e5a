package constraint

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

func TestParseAndApply(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("parser init failed: %v", err)
	}
	file, err := parser.ParseString(`-- board pinout
loc clk T14
iostandard clk LVCMOS33
loc led[0] U2
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(file.Stmts))
	}

	d := netlist.NewDesign("top")
	d.CreateCell("$top_ibuf", "clk")
	d.CreateCell("$top_obuf", "led[0]")
	d.Flush()

	if err := file.Apply(d); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	clk := d.Cell("clk")
	if clk.Attrs[AttrLOC] != "T14" {
		t.Fatalf("expected LOC T14, got %q", clk.Attrs[AttrLOC])
	}
	if clk.Attrs[AttrIOStandard] != "LVCMOS33" {
		t.Fatalf("expected IOSTANDARD LVCMOS33, got %q", clk.Attrs[AttrIOStandard])
	}
	if d.Cell("led[0]").Attrs[AttrLOC] != "U2" {
		t.Fatalf("bus port constraint not applied")
	}
}

func TestApplyUnknownPort(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("parser init failed: %v", err)
	}
	file, err := parser.ParseString("loc nosuch T1\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = file.Apply(netlist.NewDesign("top"))
	if err == nil {
		t.Fatalf("expected error for unknown port")
	}
	if !strings.Contains(err.Error(), "nosuch") {
		t.Fatalf("error does not name the port: %v", err)
	}
}
