package i915

// chipsetInfo is what the backend needs to know about a PCI device id
type chipsetInfo struct {
	Name            string
	GraphicsVersion uint32
	SubVersion      uint32
	// IsXeLPD marks parts with the display 13 engine, which needs power-of-two strides for
	// compressed scanout
	IsXeLPD bool
}

var (
	ivybridge   = chipsetInfo{Name: "ivybridge", GraphicsVersion: 7}
	haswell     = chipsetInfo{Name: "haswell", GraphicsVersion: 7, SubVersion: 5}
	broadwell   = chipsetInfo{Name: "broadwell", GraphicsVersion: 8}
	cherryview  = chipsetInfo{Name: "cherryview", GraphicsVersion: 8}
	skylake     = chipsetInfo{Name: "skylake", GraphicsVersion: 9}
	broxton     = chipsetInfo{Name: "broxton", GraphicsVersion: 9}
	kabylake    = chipsetInfo{Name: "kabylake", GraphicsVersion: 9}
	geminilake  = chipsetInfo{Name: "geminilake", GraphicsVersion: 9}
	coffeelake  = chipsetInfo{Name: "coffeelake", GraphicsVersion: 9}
	cometlake   = chipsetInfo{Name: "cometlake", GraphicsVersion: 9}
	icelake     = chipsetInfo{Name: "icelake", GraphicsVersion: 11}
	elkhartlake = chipsetInfo{Name: "elkhartlake", GraphicsVersion: 11}
	jasperlake  = chipsetInfo{Name: "jasperlake", GraphicsVersion: 11}
	tigerlake   = chipsetInfo{Name: "tigerlake", GraphicsVersion: 12}
	rocketlake  = chipsetInfo{Name: "rocketlake", GraphicsVersion: 12}
	dg1         = chipsetInfo{Name: "dg1", GraphicsVersion: 12}
	alderlakeS  = chipsetInfo{Name: "alderlake-s", GraphicsVersion: 12}
	alderlakeP  = chipsetInfo{Name: "alderlake-p", GraphicsVersion: 12, IsXeLPD: true}
	alderlakeN  = chipsetInfo{Name: "alderlake-n", GraphicsVersion: 12, IsXeLPD: true}
	raptorlakeS = chipsetInfo{Name: "raptorlake-s", GraphicsVersion: 12}
	raptorlakeP = chipsetInfo{Name: "raptorlake-p", GraphicsVersion: 12, IsXeLPD: true}
	dg2         = chipsetInfo{Name: "dg2", GraphicsVersion: 12, SubVersion: 5}
	atsm        = chipsetInfo{Name: "ats-m", GraphicsVersion: 12, SubVersion: 5}
	meteorlake  = chipsetInfo{Name: "meteorlake", GraphicsVersion: 14}
)

var chipsets = map[uint16]chipsetInfo{
	0x0152: ivybridge,
	0x0156: ivybridge,
	0x0162: ivybridge,
	0x0166: ivybridge,
	0x0402: haswell,
	0x0412: haswell,
	0x0416: haswell,
	0x0a16: haswell,
	0x0a26: haswell,
	0x1606: broadwell,
	0x1612: broadwell,
	0x1616: broadwell,
	0x1626: broadwell,
	0x162b: broadwell,
	0x22b0: cherryview,
	0x22b1: cherryview,
	0x1902: skylake,
	0x1906: skylake,
	0x1912: skylake,
	0x1916: skylake,
	0x191b: skylake,
	0x191e: skylake,
	0x5a84: broxton,
	0x5a85: broxton,
	0x5912: kabylake,
	0x5916: kabylake,
	0x5917: kabylake,
	0x591b: kabylake,
	0x591e: kabylake,
	0x3184: geminilake,
	0x3185: geminilake,
	0x3e91: coffeelake,
	0x3e92: coffeelake,
	0x3e9b: coffeelake,
	0x3ea0: coffeelake,
	0x9b41: cometlake,
	0x9bc5: cometlake,
	0x9bca: cometlake,
	0x8a51: icelake,
	0x8a52: icelake,
	0x8a56: icelake,
	0x8a5a: icelake,
	0x4e51: elkhartlake,
	0x4e71: elkhartlake,
	0x4e55: jasperlake,
	0x4e61: jasperlake,
	0x9a40: tigerlake,
	0x9a49: tigerlake,
	0x9a60: tigerlake,
	0x9a78: tigerlake,
	0x4c8a: rocketlake,
	0x4c9a: rocketlake,
	0x4905: dg1,
	0x4906: dg1,
	0x4680: alderlakeS,
	0x4690: alderlakeS,
	0x4692: alderlakeS,
	0x46a6: alderlakeP,
	0x46a8: alderlakeP,
	0x46aa: alderlakeP,
	0x46d0: alderlakeN,
	0x46d1: alderlakeN,
	0xa780: raptorlakeS,
	0xa788: raptorlakeS,
	0xa7a0: raptorlakeP,
	0xa7a8: raptorlakeP,
	0x5690: dg2,
	0x5691: dg2,
	0x56a0: dg2,
	0x56a1: dg2,
	0x56a5: dg2,
	0x56c0: atsm,
	0x56c1: atsm,
	0x7d40: meteorlake,
	0x7d45: meteorlake,
	0x7d55: meteorlake,
	0x7dd5: meteorlake,
}

func lookupChipset(chipID int32) (chipsetInfo, bool) {
	if chipID < 0 || chipID > 0xffff {
		return chipsetInfo{}, false
	}

	info, ok := chipsets[uint16(chipID)]
	return info, ok
}
