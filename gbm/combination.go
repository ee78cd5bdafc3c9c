package gbm

import (
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"golang.org/x/exp/slices"
)

// FormatMetadata is the layout half of a combination: how a format is laid out, and how
// strongly that layout should be preferred when several satisfy a request.
type FormatMetadata struct {
	Tiling   Tiling
	Priority uint32
	Modifier fourcc.Modifier
}

// Combination is a single supported (format, layout) pair together with every usage that
// layout can serve.
type Combination struct {
	Format   fourcc.Format
	Metadata FormatMetadata
	UseFlags UseFlags
}

// Combinations is the table of everything a backend can allocate. Entries are unique per
// (format, tiling, modifier); adding an existing pair widens its usage instead.
type Combinations struct {
	byFormat *swiss.Map[fourcc.Format, []*Combination]
	count    int
}

func NewCombinations() *Combinations {
	return &Combinations{
		byFormat: swiss.NewMap[fourcc.Format, []*Combination](32),
	}
}

func (c *Combinations) find(format fourcc.Format, md FormatMetadata) *Combination {
	entries, _ := c.byFormat.Get(format)
	for _, entry := range entries {
		if entry.Metadata.Tiling == md.Tiling && entry.Metadata.Modifier == md.Modifier {
			return entry
		}
	}
	return nil
}

// Add registers format with the given layout, or widens the usage of the existing entry
func (c *Combinations) Add(format fourcc.Format, md FormatMetadata, use UseFlags) {
	if existing := c.find(format, md); existing != nil {
		existing.UseFlags |= use
		return
	}

	entries, _ := c.byFormat.Get(format)
	entries = append(entries, &Combination{
		Format:   format,
		Metadata: md,
		UseFlags: use,
	})
	c.byFormat.Put(format, entries)
	c.count++
}

func (c *Combinations) AddAll(formats []fourcc.Format, md FormatMetadata, use UseFlags) {
	for _, format := range formats {
		c.Add(format, md, use)
	}
}

// Modify widens the usage of an existing entry. Formats without a matching layout are left alone.
func (c *Combinations) Modify(format fourcc.Format, md FormatMetadata, use UseFlags) {
	if existing := c.find(format, md); existing != nil {
		existing.UseFlags |= use
	}
}

func (c *Combinations) ModifyAll(formats []fourcc.Format, md FormatMetadata, use UseFlags) {
	for _, format := range formats {
		c.Modify(format, md, use)
	}
}

// Lookup returns the highest-priority entry for format whose usage covers every requested flag
func (c *Combinations) Lookup(format fourcc.Format, use UseFlags) (*Combination, bool) {
	entries, ok := c.byFormat.Get(format)
	if !ok {
		return nil, false
	}

	var best *Combination
	for _, entry := range entries {
		if !entry.UseFlags.Contains(use) {
			continue
		}

		if best == nil || entry.Metadata.Priority > best.Metadata.Priority {
			best = entry
		}
	}

	return best, best != nil
}

// Entries returns all entries for format in the order they were first added
func (c *Combinations) Entries(format fourcc.Format) []Combination {
	entries, _ := c.byFormat.Get(format)
	out := make([]Combination, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}
	return out
}

func (c *Combinations) Formats() []fourcc.Format {
	formats := make([]fourcc.Format, 0, c.byFormat.Count())
	c.byFormat.Iter(func(format fourcc.Format, _ []*Combination) bool {
		formats = append(formats, format)
		return false
	})
	slices.Sort(formats)
	return formats
}

func (c *Combinations) Len() int {
	return c.count
}

func (c *Combinations) PrintJson(writer *jwriter.Writer) {
	formats := writer.Object()
	defer formats.End()

	for _, format := range c.Formats() {
		entries := formats.Name(format.String()).Array()
		for _, entry := range c.Entries(format) {
			obj := entries.Object()
			obj.Name("Tiling").String(entry.Metadata.Tiling.String())
			obj.Name("Modifier").String(entry.Metadata.Modifier.String())
			obj.Name("Priority").Int(int(entry.Metadata.Priority))
			obj.Name("UseFlags").String(entry.UseFlags.String())
			obj.End()
		}
		entries.End()
	}
}
