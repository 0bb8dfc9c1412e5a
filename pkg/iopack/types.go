// Package iopack legalizes the top-level IO boundary of a netlist against a
// target device: it materializes pad and buffer cells for every top-level
// port, binds each pad to a concrete device site, decomposes composite IO
// macros into the elementary primitives the device provides, and finally
// retypes everything into the device primitive vocabulary.
package iopack

// Placeholder cell types produced by the front end for top-level ports.
const (
	TypeTopIn    = "$top_ibuf"
	TypeTopOut   = "$top_obuf"
	TypeTopInOut = "$top_iobuf"
)

// Pad and buffer cell types. The macro types bundle more than one elementary
// behavior and are decomposed before technology mapping.
const (
	TypePad = "PAD"

	TypeIBUF              = "IBUF"
	TypeIBUFDisable       = "IBUF_IBUFDISABLE"
	TypeIBUFIntermDisable = "IBUF_INTERMDISABLE"

	TypeOBUF       = "OBUF"
	TypeOBUFT      = "OBUFT"
	TypeOBUFTDCIEn = "OBUFT_DCIEN"

	TypeIOBUF              = "IOBUF"
	TypeIOBUFDCIEn         = "IOBUF_DCIEN"
	TypeIOBUFIntermDisable = "IOBUF_INTERMDISABLE"
)

// Final device primitive types produced by technology mapping.
const (
	TypeIOBInbuf  = "IOB33_INBUF_EN"
	TypeIOBOutbuf = "IOB33_OUTBUF"
)

// SiteTypePad is the device site type capable of hosting a pad.
const SiteTypePad = "IOB_PAD"

// Attribute keys used on IO cells.
const (
	AttrBEL        = "BEL"
	AttrLOC        = "LOC"
	AttrIOStandard = "IOSTANDARD"

	// Provenance keys consumed by the downstream interchange step.
	AttrOrigMacro        = "X_ORIG_MACRO_PRIM"
	AttrMacroPortsPrefix = "X_MACRO_PORTS_"
)

// BEL suffixes appended to a site name to address the elementary locations
// inside one IO block.
const (
	belSuffixPad    = "/PAD"
	belSuffixInbuf  = "/IOB33/INBUF_EN"
	belSuffixOutbuf = "/IOB33/OUTBUF"
)

// macroShape classifies a composite IO macro by which buffer halves it
// carries.
type macroShape int

const (
	shapeInput macroShape = iota
	shapeOutput
	shapeBidir
)

// macroClass describes how one macro type decomposes: which elementary type
// each half becomes. inputElem is empty for output-only shapes and vice
// versa.
type macroClass struct {
	shape      macroShape
	inputElem  string
	outputElem string
	dci        bool
}

// macroClasses is the closed set of composite IO macro types this pass
// understands. Bidirectional macros keep the disable-variant typing on their
// input half; the output half of a bidirectional macro is always tristate.
var macroClasses = map[string]macroClass{
	TypeIBUF:              {shape: shapeInput, inputElem: TypeIBUF},
	TypeIBUFDisable:       {shape: shapeInput, inputElem: TypeIBUFDisable},
	TypeIBUFIntermDisable: {shape: shapeInput, inputElem: TypeIBUFIntermDisable},

	TypeOBUF:  {shape: shapeOutput, outputElem: TypeOBUF},
	TypeOBUFT: {shape: shapeOutput, outputElem: TypeOBUFT},

	TypeIOBUF:              {shape: shapeBidir, inputElem: TypeIBUF, outputElem: TypeOBUFT},
	TypeIOBUFDCIEn:         {shape: shapeBidir, inputElem: TypeIBUFDisable, outputElem: TypeOBUFTDCIEn, dci: true},
	TypeIOBUFIntermDisable: {shape: shapeBidir, inputElem: TypeIBUFIntermDisable, outputElem: TypeOBUFT},
}

// IsMacro reports whether the cell type is a composite IO macro this pass
// decomposes.
func IsMacro(typ string) bool {
	_, ok := macroClasses[typ]
	return ok
}
