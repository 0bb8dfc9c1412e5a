package iopack

import (
	"sort"
)

// Rule rewrites one source cell type into the final device primitive
// vocabulary: the type tag is replaced and ports are renamed per the table.
//
// Ports with no rename entry keep their original name and net connection.
// Nothing is ever dropped silently: a rule that wants a port gone must not
// exist in the first place, because decomposition already shapes the cells.
type Rule struct {
	NewType     string
	PortRenames map[string]string
}

// RuleGroup applies one rule to every member type. Types that need
// identical remapping share one group instead of duplicating the rule, so
// an edit cannot silently diverge between aliases.
type RuleGroup struct {
	Types []string
	Rule  Rule
}

// ExpandGroups flattens rule groups into a per-type lookup table.
func ExpandGroups(groups []RuleGroup) map[string]Rule {
	rules := make(map[string]Rule)
	for _, g := range groups {
		for _, typ := range g.Types {
			rules[typ] = g.Rule
		}
	}
	return rules
}

// HRIORules returns the technology-mapping table for high-range IO banks.
// The rules key off the elementary types produced by decomposition, which
// is why this stage runs strictly after it.
func HRIORules() []RuleGroup {
	return []RuleGroup{
		{
			Types: []string{TypePad},
			Rule:  Rule{NewType: TypePad},
		},
		{
			Types: []string{TypeOBUF, TypeOBUFT, TypeOBUFTDCIEn},
			Rule: Rule{
				NewType: TypeIOBOutbuf,
				PortRenames: map[string]string{
					"I": "IN",
					"O": "OUT",
					"T": "TRI",
				},
			},
		},
		{
			Types: []string{TypeIBUF, TypeIBUFDisable, TypeIBUFIntermDisable},
			Rule: Rule{
				NewType: TypeIOBInbuf,
				PortRenames: map[string]string{
					"I": "PAD",
					"O": "OUT",
				},
			},
		},
	}
}

// applyRules runs the rewrite once over every cell in the finalized design.
// Renames are applied in sorted source-port order for reproducible output.
func (p *Packer) applyRules(groups []RuleGroup) error {
	rules := ExpandGroups(groups)
	for _, c := range p.Design.Cells() {
		rule, ok := rules[c.Type]
		if !ok {
			continue
		}
		c.Type = rule.NewType
		olds := make([]string, 0, len(rule.PortRenames))
		for old := range rule.PortRenames {
			if c.Port(old) != nil {
				olds = append(olds, old)
			}
		}
		sort.Strings(olds)
		for _, old := range olds {
			if err := p.Design.RenamePort(c, old, rule.PortRenames[old]); err != nil {
				return err
			}
		}
	}
	return nil
}
