package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// MemorySegment reads one MEMORY_SEGMENT under MOD_PAR, including the XCP
// SEGMENT description nested in its IF_DATA child when present.
func MemorySegment(n *block.Node) (model.MemorySegment, error) {
	if !strings.EqualFold(n.Kind, "MEMORY_SEGMENT") {
		return model.MemorySegment{}, errWrongKind("MEMORY_SEGMENT", n.Kind, n.KindSpan)
	}
	var ms model.MemorySegment
	if len(n.Header) == 0 {
		return ms, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if n.HeaderText(0) == "" {
		return ms, errMissingName(n.Kind, n.KindSpan)
	}
	ms.Name = n.HeaderText(0)
	ms.LongIdentifier = n.HeaderText(1)

	lines := make([][]token.Token, 0, len(n.Body)+1)
	if len(n.Header) > 2 {
		lines = append(lines, n.Header[2:])
	}
	lines = append(lines, n.Body...)

	for _, line := range lines {
		i := 0
		for i < len(line) {
			text := strings.ToUpper(line[i].Text)
			switch {
			case text == "INTERN" || text == "EXTERN":
				if i+2 < len(line) {
					ms.Address = toInt(line[i+1])
					ms.Size = toInt(line[i+2])
					for _, t := range line[i+3:] {
						ms.Attributes = append(ms.Attributes, t.Text)
					}
				}
				i = len(line)
			case ms.ClassType == "" && i+1 < len(line) &&
				line[i].Kind == token.Ident && line[i+1].Kind == token.Ident:
				ms.ClassType = line[i].Text
				ms.MemoryType = line[i+1].Text
				i += 2
			default:
				i++
			}
		}
	}

	if ifd, ok := n.FirstChild("IF_DATA"); ok {
		host := ifd
		if x, ok := ifd.FirstChild("XCPplus"); ok {
			host = x
		}
		if seg, ok := host.FirstChild("SEGMENT"); ok {
			si := segmentInfo(seg)
			ms.SegmentInfo = &si
		}
	}
	return ms, nil
}

func segmentInfo(n *block.Node) model.SegmentInfo {
	var si model.SegmentInfo
	flat := flatTokens(n)
	fields := []*int64{
		&si.SegmentNumber, &si.NumPages, &si.AddressExtension,
		&si.CompressionMethod, &si.EncryptionMethod,
	}
	for i, dst := range fields {
		if i >= len(flat) || !flat[i].IsNumeric() {
			break
		}
		*dst = toInt(flat[i])
	}

	if cs, ok := n.FirstChild("CHECKSUM"); ok {
		if toks := flatTokens(cs); len(toks) > 0 {
			si.ChecksumType = toks[0].Text
		}
	}
	for _, pg := range n.ChildrenOf("PAGE") {
		toks := flatTokens(pg)
		var p model.PageInfo
		if len(toks) > 0 {
			p.PageNumber = toInt(toks[0])
		}
		if len(toks) > 1 {
			p.ECUAccess = toks[1].Text
		}
		if len(toks) > 2 {
			p.XcpReadAccess = toks[2].Text
		}
		if len(toks) > 3 {
			p.XcpWriteAccess = toks[3].Text
		}
		si.Pages = append(si.Pages, p)
	}
	return si
}
