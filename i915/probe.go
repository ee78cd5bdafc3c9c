package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
	"golang.org/x/exp/slog"
)

// probe builds the device descriptor and decides the session's query variant. Only the queries
// the backend cannot work without fail initialization.
func probe(logger *slog.Logger, drv kernel.Driver, cfg config.Config) (*Descriptor, Session, error) {
	var session Session

	chipID, err := drv.GetParam(kernel.ParamChipsetID)
	if err != nil {
		return nil, session, errors.Mark(errors.Wrap(err, "failed to query the chipset id"), gbm.ErrFatalInit)
	}

	info, ok := lookupChipset(chipID)
	if !ok {
		return nil, session, errors.Mark(errors.Newf("unsupported chipset id %#06x", chipID), gbm.ErrFatalInit)
	}

	tier := tierFor(info.GraphicsVersion, info.SubVersion)
	desc := &Descriptor{
		ChipID:          uint16(chipID),
		Chipset:         info.Name,
		GraphicsVersion: info.GraphicsVersion,
		SubVersion:      info.SubVersion,
		IsXeLPD:         info.IsXeLPD,
		Tier:            tier,
		ModifierOrder:   tiers[tier].ModifierOrder,
		HasHWProtection: info.GraphicsVersion >= 12,
	}

	hasLLC, err := drv.GetParam(kernel.ParamHasLLC)
	if err != nil {
		return nil, session, errors.Mark(errors.Wrap(err, "failed to query the llc capability"), gbm.ErrFatalInit)
	}
	desc.HasLLC = hasLLC != 0

	gttVersion, err := drv.GetParam(kernel.ParamMmapGTTVersion)
	if err != nil {
		return nil, session, errors.Mark(errors.Wrap(err, "failed to query the mmap gtt version"), gbm.ErrFatalInit)
	}
	desc.HasMmapOffset = gttVersion >= 4

	session.Variant = probeMemoryRegions(logger, drv, desc)
	desc.HasLocalMemory = desc.Local.Size > 0
	desc.ForceLocalMemory = desc.HasLocalMemory && cfg.ForceLocalMemory()

	desc.CursorWidth, desc.CursorHeight = probeCursorSize(logger, drv)

	logger.Debug("i915::probe",
		slog.String("Chipset", desc.Chipset),
		slog.Int("GraphicsVersion", int(desc.GraphicsVersion)),
		slog.Int("SubVersion", int(desc.SubVersion)),
		slog.String("Tier", desc.Tier.String()),
		slog.Bool("HasLLC", desc.HasLLC),
		slog.Bool("HasMmapOffset", desc.HasMmapOffset),
		slog.Bool("HasLocalMemory", desc.HasLocalMemory),
		slog.String("QueryVariant", session.Variant.String()),
	)

	return desc, session, nil
}

// probeMemoryRegions fills the descriptor's pools from whichever region query the kernel
// supports. The preview query is tried first; a kernel answering neither leaves both pools empty.
func probeMemoryRegions(logger *slog.Logger, drv kernel.Driver, desc *Descriptor) QueryVariant {
	regions, err := queryMemoryRegions(drv, kernel.QueryPrelimMemoryRegions)
	if err == nil {
		logger.Info("using the prelim memory region uAPI")
		applyMemoryRegions(desc, regions)
		return QueryPrelim
	}

	regions, err = queryMemoryRegions(drv, kernel.QueryMemoryRegions)
	if err != nil {
		logger.Info("memory region query is unavailable, assuming system memory only", slog.Any("error", err))
		return QueryStandard
	}

	applyMemoryRegions(desc, regions)
	return QueryStandard
}

func queryMemoryRegions(drv kernel.Driver, queryID kernel.QueryID) ([]kernel.RegionInfo, error) {
	length, err := drv.Query(queryID, nil)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, errors.Newf("query item %#x was rejected with %d", uint64(queryID), length)
	}

	data := make([]byte, length)
	length, err = drv.Query(queryID, data)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, errors.Newf("query item %#x was rejected with %d", uint64(queryID), length)
	}

	return kernel.DecodeMemoryRegions(data[:length])
}

func applyMemoryRegions(desc *Descriptor, regions []kernel.RegionInfo) {
	for _, region := range regions {
		pool := MemoryPool{Region: region.Region, Size: region.ProbedSize}

		switch region.Region.Class {
		case kernel.MemoryClassSystem:
			desc.System = pool
		case kernel.MemoryClassDevice:
			desc.Local = pool
		}
	}
}

func probeCursorSize(logger *slog.Logger, drv kernel.Driver) (uint32, uint32) {
	var width, height uint64

	value, err := drv.GetCap(kernel.CapCursorWidth)
	if err != nil {
		logger.Info("cursor width is unavailable, using the default", slog.Any("error", err))
	} else {
		width = value
		value, err = drv.GetCap(kernel.CapCursorHeight)
		if err != nil {
			logger.Info("cursor height is unavailable, using the default", slog.Any("error", err))
		} else {
			height = value
		}
	}

	// A zero cap is treated like a missing one
	if width == 0 {
		width = defaultCursorSize
	}
	if height == 0 {
		height = defaultCursorSize
	}
	return uint32(width), uint32(height)
}
