package network

import (
	"github.com/dd0wney/cluso-sigpath/pkg/interaction"
	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

// Regulation is the mode by which a transcription factor acts on a gene.
type Regulation int

const (
	Activates Regulation = iota
	Represses
)

// Parents lists the transcriptional regulators of one gene.
type Parents struct {
	Regulators NodeSet
	Mode       map[string]Regulation
}

// RegulatorIndex indexes transcriptional edges in both directions.
type RegulatorIndex struct {
	Parents  map[string]*Parents
	Children map[string]NodeSet
}

// Regulators indexes the transcriptional ("t") edges of n. A classifier sign
// of +1 records an activating parent and a sign of 0 a repressing one; any
// other sign is skipped, so -t| edges do not contribute.
func Regulators(n *Network) *RegulatorIndex {
	idx := &RegulatorIndex{
		Parents:  make(map[string]*Parents),
		Children: make(map[string]NodeSet),
	}

	for _, source := range n.Sources() {
		for _, in := range n.Interactions(source) {
			c := interaction.Classify(in.Label)
			if c.Type != interaction.TypeTranscriptional {
				continue
			}

			var mode Regulation
			switch c.Sign {
			case sign.Positive:
				mode = Activates
			case sign.None:
				mode = Represses
			default:
				continue
			}

			p, ok := idx.Parents[in.Target]
			if !ok {
				p = &Parents{Regulators: make(NodeSet), Mode: make(map[string]Regulation)}
				idx.Parents[in.Target] = p
			}
			p.Regulators.Add(source)
			p.Mode[source] = mode

			if _, ok := idx.Children[source]; !ok {
				idx.Children[source] = make(NodeSet)
			}
			idx.Children[source].Add(in.Target)
		}
	}
	return idx
}
