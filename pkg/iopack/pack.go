package iopack

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/device"
	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// Packer runs the IO packing pass over one design. The pass is
// single-threaded and all-or-nothing: the first fatal condition aborts it
// and the design must be considered unusable afterwards.
type Packer struct {
	Design   *netlist.Design
	Device   device.Database
	Inserter BufferInserter // nil selects DefaultInserter
	Progress io.Writer      // nil silences progress output
}

func (p *Packer) logf(format string, args ...any) {
	if p.Progress != nil {
		fmt.Fprintf(p.Progress, format+"\n", args...)
	}
}

// Run executes the four stages in order: materialize pads and buffers,
// resolve a device site for every pad, decompose composite macros onto the
// sites, and retype everything into the device primitive vocabulary.
func (p *Packer) Run() error {
	p.logf("Inserting IO buffers..")
	pairs, err := p.materialize()
	if err != nil {
		return err
	}
	if err := p.resolveSites(pairs); err != nil {
		return err
	}
	if err := p.decomposeAll(pairs); err != nil {
		return err
	}
	p.Design.Flush()
	return p.applyRules(HRIORules())
}

// materialize converts every top-level placeholder into a (pad, buffer
// port) pair. The flush at the end is a barrier: the resolver and
// decomposition stages enumerate cells by type and must see the new pads.
func (p *Packer) materialize() ([]PadBuf, error) {
	ins := p.Inserter
	if ins == nil {
		ins = DefaultInserter{}
	}
	var pairs []PadBuf
	for _, c := range p.Design.Cells() {
		switch c.Type {
		case TypeTopIn, TypeTopOut, TypeTopInOut:
			pb, err := ins.Insert(p.Design, c)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pb)
		}
	}
	p.Design.Flush()
	return pairs, nil
}

// decomposeAll rewrites every macro buffer onto its pad's site. A buffer
// can show up under more than one pair (differential pads), so each is
// decomposed once.
func (p *Packer) decomposeAll(pairs []PadBuf) error {
	packed := make(map[string]bool)
	for _, pb := range pairs {
		buf := pb.Buf.Cell
		if packed[buf.Name] {
			continue
		}
		if err := p.decompose(buf); err != nil {
			return err
		}
		packed[buf.Name] = true
	}
	return nil
}
