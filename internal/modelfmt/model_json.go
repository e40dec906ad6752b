package modelfmt

import (
	"encoding/json"
	"io"

	"a2lkit/internal/model"
)

// JSON mirror types keep the export format decoupled from the in-memory
// model, so renaming a model field never silently changes the output.

type SymbolLinkJSON struct {
	Symbol string `json:"symbol"`
	Offset int64  `json:"offset"`
}

type ProtocolLayerJSON struct {
	Version            int64    `json:"version"`
	TimingValues       []int64  `json:"timing_values,omitempty"`
	MaxCTO             int64    `json:"max_cto"`
	MaxDTO             int64    `json:"max_dto"`
	ByteOrder          string   `json:"byte_order,omitempty"`
	AddressGranularity string   `json:"address_granularity,omitempty"`
	OptionalCmds       []string `json:"optional_cmds,omitempty"`
	CommunicationMode  string   `json:"communication_mode,omitempty"`
	MasterMaxBS        int64    `json:"master_max_bs,omitempty"`
	MasterMinST        int64    `json:"master_min_st,omitempty"`
}

type DaqEventJSON struct {
	Name               string `json:"name"`
	ShortName          string `json:"short_name,omitempty"`
	EventChannelNumber int64  `json:"event_channel_number"`
	Type               string `json:"type,omitempty"`
	MaxDaqList         int64  `json:"max_daq_list,omitempty"`
	Cycle              int64  `json:"cycle,omitempty"`
	TimeUnit           int64  `json:"time_unit,omitempty"`
	Priority           int64  `json:"priority,omitempty"`
}

type DaqJSON struct {
	Mode                    string         `json:"mode,omitempty"`
	MaxDaq                  int64          `json:"max_daq"`
	MaxEventChannel         int64          `json:"max_event_channel"`
	MinDaq                  int64          `json:"min_daq"`
	IdentificationFieldType string         `json:"identification_field_type,omitempty"`
	OdtEntryGranularityDaq  string         `json:"odt_entry_granularity_daq,omitempty"`
	MaxOdtEntrySizeDaq      int64          `json:"max_odt_entry_size_daq,omitempty"`
	OverloadIndication      string         `json:"overload_indication,omitempty"`
	StimGranularity         string         `json:"stim_granularity,omitempty"`
	MaxOdtEntrySizeStim     int64          `json:"max_odt_entry_size_stim,omitempty"`
	BitStimSupported        bool           `json:"bit_stim_supported,omitempty"`
	Events                  []DaqEventJSON `json:"events,omitempty"`
}

type CanFdJSON struct {
	MaxDLC               int64  `json:"max_dlc,omitempty"`
	DataTransferBaudrate int64  `json:"data_transfer_baudrate,omitempty"`
	SamplePoint          int64  `json:"sample_point,omitempty"`
	BtlCycles            int64  `json:"btl_cycles,omitempty"`
	SJW                  int64  `json:"sjw,omitempty"`
	SyncEdge             string `json:"sync_edge,omitempty"`
	MaxDLCRequired       bool   `json:"max_dlc_required,omitempty"`
	SecondarySamplePoint int64  `json:"secondary_sample_point,omitempty"`
	TDC                  string `json:"transceiver_delay_compensation,omitempty"`
}

type XcpOnCanJSON struct {
	Version                   int64      `json:"version"`
	CanIDBroadcast            int64      `json:"can_id_broadcast,omitempty"`
	CanIDMaster               int64      `json:"can_id_master,omitempty"`
	CanIDSlave                int64      `json:"can_id_slave,omitempty"`
	CanIDGetDaqClockMulticast int64      `json:"can_id_get_daq_clock_multicast,omitempty"`
	Baudrate                  int64      `json:"baudrate,omitempty"`
	SamplePoint               int64      `json:"sample_point,omitempty"`
	SampleRate                string     `json:"sample_rate,omitempty"`
	BtlCycles                 int64      `json:"btl_cycles,omitempty"`
	SJW                       int64      `json:"sjw,omitempty"`
	SyncEdge                  string     `json:"sync_edge,omitempty"`
	MaxDLCRequired            bool       `json:"max_dlc_required,omitempty"`
	MaxBusLoad                int64      `json:"max_bus_load,omitempty"`
	CanFd                     *CanFdJSON `json:"can_fd,omitempty"`
}

type PageJSON struct {
	PageNumber     int64  `json:"page_number"`
	ECUAccess      string `json:"ecu_access,omitempty"`
	XcpReadAccess  string `json:"xcp_read_access,omitempty"`
	XcpWriteAccess string `json:"xcp_write_access,omitempty"`
}

type SegmentInfoJSON struct {
	SegmentNumber     int64      `json:"segment_number"`
	NumPages          int64      `json:"num_pages"`
	AddressExtension  int64      `json:"address_extension"`
	CompressionMethod int64      `json:"compression_method"`
	EncryptionMethod  int64      `json:"encryption_method"`
	ChecksumType      string     `json:"checksum_type,omitempty"`
	Pages             []PageJSON `json:"pages,omitempty"`
}

type MemorySegmentJSON struct {
	Name           string           `json:"name"`
	LongIdentifier string           `json:"long_identifier,omitempty"`
	ClassType      string           `json:"class_type,omitempty"`
	MemoryType     string           `json:"memory_type,omitempty"`
	Address        int64            `json:"address"`
	Size           int64            `json:"size"`
	Attributes     []string         `json:"attributes,omitempty"`
	SegmentInfo    *SegmentInfoJSON `json:"segment_info,omitempty"`
}

type AxisPtsJSON struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Address       int64           `json:"address"`
	InputQuantity string          `json:"input_quantity,omitempty"`
	RecordLayout  string          `json:"record_layout,omitempty"`
	Deposit       int64           `json:"deposit,omitempty"`
	CompuMethod   string          `json:"compu_method,omitempty"`
	MaxAxisPoints int64           `json:"max_axis_points,omitempty"`
	LowerLimit    float64         `json:"lower_limit"`
	UpperLimit    float64         `json:"upper_limit"`
	ByteOrder     string          `json:"byte_order,omitempty"`
	Format        string          `json:"format,omitempty"`
	SymbolLink    *SymbolLinkJSON `json:"symbol_link,omitempty"`
}

type MeasurementJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Datatype    string          `json:"datatype,omitempty"`
	CompuMethod string          `json:"compu_method,omitempty"`
	Params      []string        `json:"params,omitempty"`
	ECUAddress  int64           `json:"ecu_address,omitempty"`
	Address     int64           `json:"address,omitempty"`
	LowerLimit  float64         `json:"lower_limit"`
	UpperLimit  float64         `json:"upper_limit"`
	SymbolLink  *SymbolLinkJSON `json:"symbol_link,omitempty"`
}

type CharacteristicJSON struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type,omitempty"`
	Address      int64           `json:"address"`
	RecordLayout string          `json:"record_layout,omitempty"`
	MaxDiff      float64         `json:"max_diff,omitempty"`
	CompuMethod  string          `json:"compu_method,omitempty"`
	LowerLimit   float64         `json:"lower_limit"`
	UpperLimit   float64         `json:"upper_limit"`
	SymbolLink   *SymbolLinkJSON `json:"symbol_link,omitempty"`
}

type CompuMethodJSON struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MethodType  string    `json:"method_type,omitempty"`
	Format      string    `json:"format,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Coeffs      []float64 `json:"coeffs,omitempty"`
}

type VTabEntryJSON struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

type CompuVTabJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	TabType     string          `json:"tab_type,omitempty"`
	Entries     []VTabEntryJSON `json:"entries,omitempty"`
}

type RecordLayoutJSON struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries,omitempty"`
}

type GroupJSON struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	RefMeasurements []string `json:"ref_measurements,omitempty"`
}

type FunctionJSON struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	LocMeasurements []string `json:"loc_measurements,omitempty"`
}

type ModelJSON struct {
	ProjectName string `json:"project_name"`
	ModuleName  string `json:"module_name"`

	ProtocolLayer *ProtocolLayerJSON `json:"protocol_layer,omitempty"`
	Daq           *DaqJSON           `json:"daq,omitempty"`
	// DaqEvents repeats the events flattened at the top level, matching
	// the shape downstream consumers already read.
	DaqEvents []DaqEventJSON `json:"daq_events,omitempty"`
	XcpOnCan  *XcpOnCanJSON  `json:"xcp_on_can,omitempty"`

	MemorySegments  []MemorySegmentJSON  `json:"memory_segments,omitempty"`
	AxisPts         []AxisPtsJSON        `json:"axis_pts,omitempty"`
	Measurements    []MeasurementJSON    `json:"measurements,omitempty"`
	Characteristics []CharacteristicJSON `json:"characteristics,omitempty"`
	CompuMethods    []CompuMethodJSON    `json:"compu_methods,omitempty"`
	CompuVTabs      []CompuVTabJSON      `json:"compu_vtabs,omitempty"`
	RecordLayouts   []RecordLayoutJSON   `json:"record_layouts,omitempty"`
	Groups          []GroupJSON          `json:"groups,omitempty"`
	Functions       []FunctionJSON       `json:"functions,omitempty"`
}

// BuildModelJSON converts the in-memory model to its export mirror.
func BuildModelJSON(m *model.Model) ModelJSON {
	out := ModelJSON{
		ProjectName: m.ProjectName,
		ModuleName:  m.ModuleName,
	}
	if m.ProtocolLayer != nil {
		pl := protocolLayerJSON(*m.ProtocolLayer)
		out.ProtocolLayer = &pl
	}
	if m.Daq != nil {
		dq := daqJSON(*m.Daq)
		out.Daq = &dq
	}
	for _, ev := range m.DaqEvents {
		out.DaqEvents = append(out.DaqEvents, DaqEventJSON{
			Name: ev.Name, ShortName: ev.ShortName,
			EventChannelNumber: ev.EventChannelNumber, Type: ev.Type,
			MaxDaqList: ev.MaxDaqList, Cycle: ev.Cycle,
			TimeUnit: ev.TimeUnit, Priority: ev.Priority,
		})
	}
	if m.XcpOnCan != nil {
		tc := xcpOnCanJSON(*m.XcpOnCan)
		out.XcpOnCan = &tc
	}
	for _, ms := range m.MemorySegments {
		out.MemorySegments = append(out.MemorySegments, memorySegmentJSON(ms))
	}
	for _, a := range m.AxisPts {
		out.AxisPts = append(out.AxisPts, AxisPtsJSON{
			Name: a.Name, Description: a.Description, Address: a.Address,
			InputQuantity: a.InputQuantity, RecordLayout: a.RecordLayout,
			Deposit: a.Deposit, CompuMethod: a.CompuMethod,
			MaxAxisPoints: a.MaxAxisPoints,
			LowerLimit:    a.LowerLimit, UpperLimit: a.UpperLimit,
			ByteOrder: a.ByteOrder, Format: a.Format,
			SymbolLink: symbolLinkJSON(a.SymbolLink),
		})
	}
	for _, ms := range m.Measurements {
		out.Measurements = append(out.Measurements, MeasurementJSON{
			Name: ms.Name, Description: ms.Description, Datatype: ms.Datatype,
			CompuMethod: ms.CompuMethod, Params: ms.Params,
			ECUAddress: ms.ECUAddress, Address: ms.Address,
			LowerLimit: ms.LowerLimit, UpperLimit: ms.UpperLimit,
			SymbolLink: symbolLinkJSON(ms.SymbolLink),
		})
	}
	for _, c := range m.Characteristics {
		out.Characteristics = append(out.Characteristics, CharacteristicJSON{
			Name: c.Name, Description: c.Description, Type: c.Type,
			Address: c.Address, RecordLayout: c.RecordLayout,
			MaxDiff: c.MaxDiff, CompuMethod: c.CompuMethod,
			LowerLimit: c.LowerLimit, UpperLimit: c.UpperLimit,
			SymbolLink: symbolLinkJSON(c.SymbolLink),
		})
	}
	for _, cm := range m.CompuMethods {
		out.CompuMethods = append(out.CompuMethods, CompuMethodJSON{
			Name: cm.Name, Description: cm.Description, MethodType: cm.MethodType,
			Format: cm.Format, Unit: cm.Unit, Coeffs: cm.Coeffs,
		})
	}
	for _, vt := range m.CompuVTabs {
		j := CompuVTabJSON{Name: vt.Name, Description: vt.Description, TabType: vt.TabType}
		for _, e := range vt.Entries {
			j.Entries = append(j.Entries, VTabEntryJSON{Value: e.Value, Label: e.Label})
		}
		out.CompuVTabs = append(out.CompuVTabs, j)
	}
	for _, rl := range m.RecordLayouts {
		out.RecordLayouts = append(out.RecordLayouts, RecordLayoutJSON{Name: rl.Name, Entries: rl.Entries})
	}
	for _, g := range m.Groups {
		out.Groups = append(out.Groups, GroupJSON{
			Name: g.Name, Description: g.Description, RefMeasurements: g.RefMeasurements,
		})
	}
	for _, f := range m.Functions {
		out.Functions = append(out.Functions, FunctionJSON{
			Name: f.Name, Description: f.Description, LocMeasurements: f.LocMeasurements,
		})
	}
	return out
}

// ModelToJSON writes the extracted model as indented JSON.
func ModelToJSON(w io.Writer, m *model.Model) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildModelJSON(m))
}

func symbolLinkJSON(sl *model.SymbolLink) *SymbolLinkJSON {
	if sl == nil {
		return nil
	}
	return &SymbolLinkJSON{Symbol: sl.Symbol, Offset: sl.Offset}
}

func protocolLayerJSON(pl model.ProtocolLayer) ProtocolLayerJSON {
	return ProtocolLayerJSON{
		Version: pl.Version, TimingValues: pl.TimingValues,
		MaxCTO: pl.MaxCTO, MaxDTO: pl.MaxDTO,
		ByteOrder: pl.ByteOrder, AddressGranularity: pl.AddressGranularity,
		OptionalCmds: pl.OptionalCmds, CommunicationMode: pl.CommunicationMode,
		MasterMaxBS: pl.MasterMaxBS, MasterMinST: pl.MasterMinST,
	}
}

func daqJSON(dq model.DaqConfig) DaqJSON {
	j := DaqJSON{
		Mode: dq.Mode, MaxDaq: dq.MaxDaq,
		MaxEventChannel: dq.MaxEventChannel, MinDaq: dq.MinDaq,
		IdentificationFieldType: dq.IdentificationFieldType,
		OdtEntryGranularityDaq:  dq.OdtEntryGranularityDaq,
		MaxOdtEntrySizeDaq:      dq.MaxOdtEntrySizeDaq,
		OverloadIndication:      dq.OverloadIndication,
		StimGranularity:         dq.StimGranularity,
		MaxOdtEntrySizeStim:     dq.MaxOdtEntrySizeStim,
		BitStimSupported:        dq.BitStimSupported,
	}
	for _, ev := range dq.Events {
		j.Events = append(j.Events, DaqEventJSON{
			Name: ev.Name, ShortName: ev.ShortName,
			EventChannelNumber: ev.EventChannelNumber, Type: ev.Type,
			MaxDaqList: ev.MaxDaqList, Cycle: ev.Cycle,
			TimeUnit: ev.TimeUnit, Priority: ev.Priority,
		})
	}
	return j
}

func xcpOnCanJSON(tc model.XcpOnCanConfig) XcpOnCanJSON {
	j := XcpOnCanJSON{
		Version:                   tc.Version,
		CanIDBroadcast:            tc.CanIDBroadcast,
		CanIDMaster:               tc.CanIDMaster,
		CanIDSlave:                tc.CanIDSlave,
		CanIDGetDaqClockMulticast: tc.CanIDGetDaqClockMulticast,
		Baudrate:                  tc.Baudrate,
		SamplePoint:               tc.SamplePoint,
		SampleRate:                tc.SampleRate,
		BtlCycles:                 tc.BtlCycles,
		SJW:                       tc.SJW,
		SyncEdge:                  tc.SyncEdge,
		MaxDLCRequired:            tc.MaxDLCRequired,
		MaxBusLoad:                tc.MaxBusLoad,
	}
	if tc.CanFd != nil {
		fd := CanFdJSON{
			MaxDLC:               tc.CanFd.MaxDLC,
			DataTransferBaudrate: tc.CanFd.DataTransferBaudrate,
			SamplePoint:          tc.CanFd.SamplePoint,
			BtlCycles:            tc.CanFd.BtlCycles,
			SJW:                  tc.CanFd.SJW,
			SyncEdge:             tc.CanFd.SyncEdge,
			MaxDLCRequired:       tc.CanFd.MaxDLCRequired,
			SecondarySamplePoint: tc.CanFd.SecondarySamplePoint,
			TDC:                  tc.CanFd.TDC,
		}
		j.CanFd = &fd
	}
	return j
}

func memorySegmentJSON(ms model.MemorySegment) MemorySegmentJSON {
	j := MemorySegmentJSON{
		Name: ms.Name, LongIdentifier: ms.LongIdentifier,
		ClassType: ms.ClassType, MemoryType: ms.MemoryType,
		Address: ms.Address, Size: ms.Size, Attributes: ms.Attributes,
	}
	if ms.SegmentInfo != nil {
		si := SegmentInfoJSON{
			SegmentNumber:     ms.SegmentInfo.SegmentNumber,
			NumPages:          ms.SegmentInfo.NumPages,
			AddressExtension:  ms.SegmentInfo.AddressExtension,
			CompressionMethod: ms.SegmentInfo.CompressionMethod,
			EncryptionMethod:  ms.SegmentInfo.EncryptionMethod,
			ChecksumType:      ms.SegmentInfo.ChecksumType,
		}
		for _, p := range ms.SegmentInfo.Pages {
			si.Pages = append(si.Pages, PageJSON{
				PageNumber: p.PageNumber, ECUAccess: p.ECUAccess,
				XcpReadAccess: p.XcpReadAccess, XcpWriteAccess: p.XcpWriteAccess,
			})
		}
		j.SegmentInfo = &si
	}
	return j
}
