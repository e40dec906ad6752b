package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// ProtocolLayer reads the XCP PROTOCOL_LAYER block. The leading numeric run
// carries the version, the command timings and, at its tail, MAX_CTO and
// MAX_DTO; everything after is keyword-driven.
func ProtocolLayer(n *block.Node) (model.ProtocolLayer, error) {
	if !strings.EqualFold(n.Kind, "PROTOCOL_LAYER") {
		return model.ProtocolLayer{}, errWrongKind("PROTOCOL_LAYER", n.Kind, n.KindSpan)
	}
	var pl model.ProtocolLayer
	flat := flatTokens(n)

	i := 0
	var prefix []int64
	for ; i < len(flat) && flat[i].IsNumeric(); i++ {
		prefix = append(prefix, toInt(flat[i]))
	}
	if len(prefix) > 0 {
		pl.Version = prefix[0]
		pl.TimingValues = prefix[1:]
	}
	if len(prefix) >= 3 {
		pl.MaxCTO = prefix[len(prefix)-3]
		pl.MaxDTO = prefix[len(prefix)-2]
	}

	for ; i < len(flat); i++ {
		text := flat[i].Text
		switch {
		case strings.HasPrefix(text, "BYTE_ORDER"):
			pl.ByteOrder = text
		case strings.HasPrefix(text, "ADDRESS_GRANULARITY"):
			pl.AddressGranularity = text
		case text == "OPTIONAL_CMD":
			if i+1 < len(flat) {
				i++
				pl.OptionalCmds = append(pl.OptionalCmds, flat[i].Text)
			}
		case text == "COMMUNICATION_MODE_SUPPORTED":
			if i+1 < len(flat) {
				i++
				pl.CommunicationMode = flat[i].Text
			}
		case text == "MASTER":
			if i+2 < len(flat) && flat[i+1].Kind == token.IntLit {
				pl.MasterMaxBS = toInt(flat[i+1])
				pl.MasterMinST = toInt(flat[i+2])
				i += 2
			}
		}
	}
	return pl, nil
}
