package iopack

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

// MacroPort is one entry of a decomposed macro's provenance record: an
// original macro port that shared a net with the sub-cell port the record is
// attached to.
type MacroPort struct {
	Name string
	Dir  netlist.Direction
}

// FormatMacroPorts serializes provenance entries as
// "name,dir;name2,dir2;..." with no trailing separator. The format is part
// of the interchange contract with the downstream conversion step and must
// not change.
func FormatMacroPorts(ports []MacroPort) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = p.Name + "," + p.Dir.String()
	}
	return strings.Join(parts, ";")
}

// ParseMacroPorts is the inverse of FormatMacroPorts.
func ParseMacroPorts(s string) ([]MacroPort, error) {
	if s == "" {
		return nil, nil
	}
	var out []MacroPort
	for _, part := range strings.Split(s, ";") {
		name, dir, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("iopack: malformed macro port entry %q", part)
		}
		d, err := netlist.ParseDirection(dir)
		if err != nil {
			return nil, fmt.Errorf("iopack: macro port %s: %w", name, err)
		}
		out = append(out, MacroPort{Name: name, Dir: d})
	}
	return out, nil
}
