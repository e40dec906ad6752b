package model

// SymbolLink ties a record to a linker symbol plus offset.
type SymbolLink struct {
	Symbol string
	Offset int64
}

// ProtocolLayer holds the XCP protocol layer parameters.
type ProtocolLayer struct {
	Version            int64
	TimingValues       []int64
	MaxCTO             int64
	MaxDTO             int64
	ByteOrder          string
	AddressGranularity string
	OptionalCmds       []string
	CommunicationMode  string
	MasterMaxBS        int64
	MasterMinST        int64
}

// DaqEvent is one EVENT channel of the DAQ configuration.
type DaqEvent struct {
	Name               string
	ShortName          string
	EventChannelNumber int64
	Type               string // DAQ, STIM, or DAQ_STIM
	MaxDaqList         int64
	Cycle              int64
	TimeUnit           int64
	Priority           int64
}

// DaqConfig holds the DAQ block parameters and its event channels.
type DaqConfig struct {
	Mode                    string // STATIC or DYNAMIC
	MaxDaq                  int64
	MaxEventChannel         int64
	MinDaq                  int64
	IdentificationFieldType string
	OdtEntryGranularityDaq  string
	MaxOdtEntrySizeDaq      int64
	OverloadIndication      string
	StimGranularity         string
	MaxOdtEntrySizeStim     int64
	BitStimSupported        bool
	Events                  []DaqEvent
}

// XcpOnCanFdConfig holds the CAN FD sub-block of the transport layer.
type XcpOnCanFdConfig struct {
	MaxDLC               int64
	DataTransferBaudrate int64
	SamplePoint          int64
	BtlCycles            int64
	SJW                  int64
	SyncEdge             string
	MaxDLCRequired       bool
	SecondarySamplePoint int64
	TDC                  string
}

// XcpOnCanConfig holds the XCP-on-CAN transport layer parameters.
type XcpOnCanConfig struct {
	Version                   int64
	CanIDBroadcast            int64
	CanIDMaster               int64
	CanIDSlave                int64
	CanIDGetDaqClockMulticast int64
	Baudrate                  int64
	SamplePoint               int64
	SampleRate                string
	BtlCycles                 int64
	SJW                       int64
	SyncEdge                  string
	MaxDLCRequired            bool
	MaxBusLoad                int64
	CanFd                     *XcpOnCanFdConfig
}

// PageInfo is one PAGE of a memory segment.
type PageInfo struct {
	PageNumber     int64
	ECUAccess      string
	XcpReadAccess  string
	XcpWriteAccess string
}

// SegmentInfo holds the XCP SEGMENT parameters of a memory segment.
type SegmentInfo struct {
	SegmentNumber     int64
	NumPages          int64
	AddressExtension  int64
	CompressionMethod int64
	EncryptionMethod  int64
	ChecksumType      string
	Pages             []PageInfo
}

// MemorySegment describes one MEMORY_SEGMENT under MOD_PAR.
type MemorySegment struct {
	Name           string
	LongIdentifier string
	ClassType      string // CODE, DATA, RESERVED, ...
	MemoryType     string // FLASH, ROM, RAM
	Address        int64
	Size           int64
	Attributes     []string
	SegmentInfo    *SegmentInfo
}

// AxisPts describes one calibration axis.
type AxisPts struct {
	Name          string
	Description   string
	Address       int64
	InputQuantity string
	RecordLayout  string
	Deposit       int64
	CompuMethod   string
	MaxAxisPoints int64
	LowerLimit    float64
	UpperLimit    float64
	ByteOrder     string
	Format        string
	SymbolLink    *SymbolLink
}

// Measurement describes one MEASUREMENT signal.
type Measurement struct {
	Name        string
	Description string
	Datatype    string
	CompuMethod string
	Params      []string
	ECUAddress  int64
	Address     int64
	LowerLimit  float64
	UpperLimit  float64
	SymbolLink  *SymbolLink
}

// Characteristic describes one tunable CHARACTERISTIC.
type Characteristic struct {
	Name         string
	Description  string
	Type         string // VALUE, CURVE, MAP, ...
	Address      int64
	RecordLayout string
	MaxDiff      float64
	CompuMethod  string
	LowerLimit   float64
	UpperLimit   float64
	SymbolLink   *SymbolLink
}

// CompuMethod describes one conversion method.
type CompuMethod struct {
	Name        string
	Description string
	MethodType  string // RAT_FUNC, TAB_VERB, ...
	Format      string
	Unit        string
	Coeffs      []float64
}

// VTabEntry maps one raw value to its verbal label.
type VTabEntry struct {
	Value int64
	Label string
}

// CompuVTab describes one verbal conversion table.
type CompuVTab struct {
	Name        string
	Description string
	TabType     string
	Entries     []VTabEntry
}

// RecordLayout describes one RECORD_LAYOUT; entries stay as raw lines since
// layouts are free-form in this subset.
type RecordLayout struct {
	Name    string
	Entries []string
}

// Group collects measurement references.
type Group struct {
	Name            string
	Description     string
	RefMeasurements []string
}

// Function collects local measurement names.
type Function struct {
	Name            string
	Description     string
	LocMeasurements []string
}

// Model is the root of the extracted data. Collections preserve source
// order; lookups by name are the caller's business.
type Model struct {
	ProjectName string
	ModuleName  string

	ProtocolLayer *ProtocolLayer
	Daq           *DaqConfig
	DaqEvents     []DaqEvent
	XcpOnCan      *XcpOnCanConfig

	MemorySegments  []MemorySegment
	AxisPts         []AxisPts
	Measurements    []Measurement
	Characteristics []Characteristic
	CompuMethods    []CompuMethod
	CompuVTabs      []CompuVTab
	RecordLayouts   []RecordLayout
	Groups          []Group
	Functions       []Function
}
