package iopack

import (
	"strings"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/device"
)

// siteOfBEL strips the sub-location suffix from a BEL attribute, returning
// the parent site name.
func siteOfBEL(bel string) string {
	if i := strings.IndexByte(bel, '/'); i >= 0 {
		return bel[:i]
	}
	return bel
}

// resolveSites binds exactly one device site to every pad. Constrained pads
// (LOC attribute, or a pre-existing BEL) are resolved first; the rest are
// drawn from free bondable pad sites in device enumeration order, so the
// assignment is reproducible across runs.
func (p *Packer) resolveSites(pairs []PadBuf) error {
	used := make(map[string]bool)
	unconstrained := 0
	for _, pb := range pairs {
		pad := pb.Pad
		if loc, ok := pad.Attrs[AttrLOC]; ok {
			site, found := p.Device.SiteByPackagePin(loc)
			if !found {
				return &UnresolvedLocationError{Pad: pad.Name, Location: loc}
			}
			p.logf("    Constraining '%s' to site '%s'", pad.Name, site.Name)
			pad.Attrs[AttrBEL] = site.Name + belSuffixPad
		}
		if bel, ok := pad.Attrs[AttrBEL]; ok {
			used[siteOfBEL(bel)] = true
		} else {
			unconstrained++
		}
	}

	// Candidate queue in device enumeration order. The scan stops once
	// enough sites are queued; this only bounds scan cost, correctness
	// comes from the exhaustion check below.
	var free []device.Site
	for _, s := range p.Device.Sites() {
		if len(free) >= unconstrained {
			break
		}
		if s.Type != SiteTypePad || s.PackagePin == "" || used[s.Name] {
			continue
		}
		free = append(free, s)
	}
	available := len(free)

	for _, pb := range pairs {
		pad := pb.Pad
		if _, ok := pad.Attrs[AttrBEL]; ok {
			continue
		}
		if len(free) == 0 {
			return &InsufficientIOResourcesError{Pad: pad.Name, Needed: unconstrained, Available: available}
		}
		pad.Attrs[AttrBEL] = free[0].Name + belSuffixPad
		free = free[1:]
	}
	return nil
}
