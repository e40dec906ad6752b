package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// Daq reads the DAQ block and its EVENT children. Event channels never fail
// individually; missing fields stay at their zero values.
func Daq(n *block.Node) (model.DaqConfig, error) {
	if !strings.EqualFold(n.Kind, "DAQ") {
		return model.DaqConfig{}, errWrongKind("DAQ", n.Kind, n.KindSpan)
	}
	var dq model.DaqConfig
	flat := flatTokens(n)

	i := 0
	if i < len(flat) && (flat[i].Text == "STATIC" || flat[i].Text == "DYNAMIC") {
		dq.Mode = flat[i].Text
		i++
	}
	counts := []*int64{&dq.MaxDaq, &dq.MaxEventChannel, &dq.MinDaq}
	for _, dst := range counts {
		if i >= len(flat) || !flat[i].IsNumeric() {
			break
		}
		*dst = toInt(flat[i])
		i++
	}

	for ; i < len(flat); i++ {
		text := flat[i].Text
		switch {
		case strings.HasPrefix(text, "IDENTIFICATION_FIELD_TYPE"):
			dq.IdentificationFieldType = text
		case strings.HasPrefix(text, "GRANULARITY_ODT_ENTRY_SIZE_DAQ"):
			dq.OdtEntryGranularityDaq = text
			if i+1 < len(flat) && flat[i+1].IsNumeric() {
				i++
				dq.MaxOdtEntrySizeDaq = toInt(flat[i])
			}
		case strings.HasPrefix(text, "GRANULARITY_ODT_ENTRY_SIZE_STIM"):
			dq.StimGranularity = text
			if i+1 < len(flat) && flat[i+1].IsNumeric() {
				i++
				dq.MaxOdtEntrySizeStim = toInt(flat[i])
			}
		case text == "OVERLOAD_INDICATION_EVENT":
			dq.OverloadIndication = "EVENT"
		case text == "OVERLOAD_INDICATION_PID":
			dq.OverloadIndication = "PID"
		case text == "BIT_STIM_SUPPORTED":
			dq.BitStimSupported = true
		}
	}

	for _, ev := range n.ChildrenOf("EVENT") {
		dq.Events = append(dq.Events, daqEvent(ev))
	}
	return dq, nil
}

func daqEvent(n *block.Node) model.DaqEvent {
	var ev model.DaqEvent
	flat := flatTokens(n)

	typeIdx := -1
	for i, t := range flat {
		if t.Kind != token.Ident {
			continue
		}
		switch t.Text {
		case "DAQ", "STIM", "DAQ_STIM":
			ev.Type = t.Text
			typeIdx = i
		}
		if typeIdx >= 0 {
			break
		}
	}

	strCount := 0
	haveChannel := false
	for i, t := range flat {
		if typeIdx >= 0 && i >= typeIdx {
			break
		}
		if t.IsNumeric() {
			if !haveChannel {
				ev.EventChannelNumber = toInt(t)
				haveChannel = true
			}
			continue
		}
		if t.Kind != token.String {
			continue
		}
		switch strCount {
		case 0:
			ev.Name = t.Text
		case 1:
			ev.ShortName = t.Text
		}
		strCount++
	}

	if typeIdx >= 0 {
		after := []*int64{&ev.MaxDaqList, &ev.Cycle, &ev.TimeUnit, &ev.Priority}
		j := 0
		for _, t := range flat[typeIdx+1:] {
			if j >= len(after) {
				break
			}
			if t.IsNumeric() {
				*after[j] = toInt(t)
				j++
			}
		}
	}
	return ev
}
