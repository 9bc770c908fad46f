// Package interaction classifies edge labels of a molecular interaction
// network into a sign and a semantic type tag.
//
// Labels follow the sif convention used by pathway databases:
//
//	-a>         activating (post-translational)
//	-a|         inactivating
//	-t>         transcriptional activation
//	-t|         transcriptional repression
//	component>  complex membership, carries no signal
//	REWIRED>    context-specific edge added by a rewiring procedure
//
// Any other label (for example HPRD> or other protein-protein interaction
// sources) is treated as an activating link.
package interaction

import (
	"regexp"
	"strings"

	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

// Type tags with a fixed meaning. Single-character tags (a, t, ...) are taken
// verbatim from the label.
const (
	TypeComponent       = "component"
	TypeActivation      = "a"
	TypeTranscriptional = "t"
	TypeInteracts       = "INTERACTS"
	TypeRewired         = "REWIRED"
)

var (
	componentRE    = regexp.MustCompile(`^-?component>$`)
	activatingRE   = regexp.MustCompile(`^-?(\S)>$`)
	inactivatingRE = regexp.MustCompile(`^-?(\S)\|$`)
	rewiredActRE   = regexp.MustCompile(`^-?REWIRED>$`)
	rewiredInRE    = regexp.MustCompile(`^-?REWIRED\|$`)
)

// Classification is the parsed form of an interaction label.
type Classification struct {
	Sign sign.Sign
	Type string
}

// Structural reports whether the edge carries no signal (component edges).
func (c Classification) Structural() bool {
	return c.Sign == sign.None
}

// Transcriptional reports whether the edge is a transcriptional step.
func (c Classification) Transcriptional() bool {
	return c.Type == TypeTranscriptional
}

// Classify maps a label to its sign and type tag. Rules are checked in order
// and the first match wins; unmatched labels fall through to an activating
// INTERACTS classification, so Classify never fails.
func Classify(label string) Classification {
	if componentRE.MatchString(label) {
		return Classification{Sign: sign.None, Type: TypeComponent}
	}
	if m := activatingRE.FindStringSubmatch(label); m != nil {
		return Classification{Sign: sign.Positive, Type: m[1]}
	}
	if m := inactivatingRE.FindStringSubmatch(label); m != nil {
		return Classification{Sign: sign.Negative, Type: m[1]}
	}
	if rewiredActRE.MatchString(label) {
		return Classification{Sign: sign.Positive, Type: TypeRewired}
	}
	if rewiredInRE.MatchString(label) {
		return Classification{Sign: sign.Negative, Type: TypeRewired}
	}
	return Classification{Sign: sign.Positive, Type: TypeInteracts}
}

// IsRewired reports whether the label marks a non-canonical edge: it contains
// "REWIRED", or "-component" (the rewiring procedure's naming for edges that
// are not literal complex membership). This is independent of the sign-0
// component rule above.
func IsRewired(label string) bool {
	return strings.Contains(label, "REWIRED") || strings.Contains(label, "-component")
}
