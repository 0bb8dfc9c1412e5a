package iopack

import (
	"io"

	"github.com/markkurossi/tabulate"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/device"
	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// WriteReport prints the pad-to-site assignment table for a packed design.
func WriteReport(w io.Writer, d *netlist.Design, db device.Database) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Pad").SetAlign(tabulate.ML)
	tab.Header("Site").SetAlign(tabulate.ML)
	tab.Header("Pin").SetAlign(tabulate.MR)
	tab.Header("IOStandard").SetAlign(tabulate.ML)

	for _, pad := range d.CellsOfType(TypePad) {
		site := siteOfBEL(pad.Attrs[AttrBEL])
		pin := ""
		if s, ok := db.SiteByName(site); ok {
			pin = s.PackagePin
		}
		row := tab.Row()
		row.Column(pad.Name)
		row.Column(site)
		row.Column(pin)
		row.Column(pad.Attrs[AttrIOStandard])
	}
	tab.Print(w)
}
