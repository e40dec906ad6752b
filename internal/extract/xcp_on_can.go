package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
)

// XcpOnCan reads the XCP_ON_CAN transport block. After the leading version
// number everything is keyword/value pairs, on the /begin line or spread
// across body lines; the scan handles both.
func XcpOnCan(n *block.Node) (model.XcpOnCanConfig, error) {
	if !strings.EqualFold(n.Kind, "XCP_ON_CAN") {
		return model.XcpOnCanConfig{}, errWrongKind("XCP_ON_CAN", n.Kind, n.KindSpan)
	}
	var tc model.XcpOnCanConfig
	flat := flatTokens(n)
	i := 0
	if i < len(flat) && flat[i].IsNumeric() {
		tc.Version = toInt(flat[i])
		i++
	}

	for ; i < len(flat); i++ {
		key := strings.ToUpper(flat[i].Text)
		if key == "MAX_DLC_REQUIRED" {
			tc.MaxDLCRequired = true
			continue
		}
		if i+1 >= len(flat) {
			break
		}
		val := flat[i+1]
		consumed := true
		switch key {
		case "CAN_ID_BROADCAST":
			tc.CanIDBroadcast = toInt(val)
		case "CAN_ID_MASTER":
			tc.CanIDMaster = toInt(val)
		case "CAN_ID_SLAVE":
			tc.CanIDSlave = toInt(val)
		case "CAN_ID_GET_DAQ_CLOCK_MULTICAST":
			tc.CanIDGetDaqClockMulticast = toInt(val)
		case "BAUDRATE":
			tc.Baudrate = toInt(val)
		case "SAMPLE_POINT":
			tc.SamplePoint = toInt(val)
		case "SAMPLE_RATE":
			tc.SampleRate = val.Text
		case "BTL_CYCLES":
			tc.BtlCycles = toInt(val)
		case "SJW":
			tc.SJW = toInt(val)
		case "SYNC_EDGE":
			tc.SyncEdge = val.Text
		case "MAX_BUS_LOAD":
			tc.MaxBusLoad = toInt(val)
		default:
			consumed = false
		}
		if consumed {
			i++
		}
	}

	if fd, ok := n.FirstChild("CAN_FD"); ok {
		cfg := canFd(fd)
		tc.CanFd = &cfg
	}
	return tc, nil
}

func canFd(n *block.Node) model.XcpOnCanFdConfig {
	var fd model.XcpOnCanFdConfig
	flat := flatTokens(n)
	for i := 0; i < len(flat); i++ {
		key := strings.ToUpper(flat[i].Text)
		if key == "MAX_DLC_REQUIRED" {
			fd.MaxDLCRequired = true
			continue
		}
		if i+1 >= len(flat) {
			break
		}
		val := flat[i+1]
		consumed := true
		switch key {
		case "MAX_DLC":
			fd.MaxDLC = toInt(val)
		case "CAN_FD_DATA_TRANSFER_BAUDRATE":
			fd.DataTransferBaudrate = toInt(val)
		case "SAMPLE_POINT":
			fd.SamplePoint = toInt(val)
		case "BTL_CYCLES":
			fd.BtlCycles = toInt(val)
		case "SJW":
			fd.SJW = toInt(val)
		case "SYNC_EDGE":
			fd.SyncEdge = val.Text
		case "SECONDARY_SAMPLE_POINT":
			fd.SecondarySamplePoint = toInt(val)
		case "TRANSCEIVER_DELAY_COMPENSATION":
			fd.TDC = val.Text
		default:
			consumed = false
		}
		if consumed {
			i++
		}
	}
	return fd
}
