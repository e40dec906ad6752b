package extract_test

import (
	"reflect"
	"testing"

	"a2lkit/internal/block"
	"a2lkit/internal/diag"
	"a2lkit/internal/extract"
	"a2lkit/internal/lexer"
	"a2lkit/internal/model"
	"a2lkit/internal/source"
)

func makeTree(t *testing.T, input string) (*block.Node, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.a2l", []byte(input)))

	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})
	root, ok := block.Build(file, lx.All(), diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("tree build failed: %v", bag.Items())
	}
	return root, bag
}

// childNode returns the first top-level block of the given kind.
func childNode(t *testing.T, input, kind string) *block.Node {
	t.Helper()
	root, _ := makeTree(t, input)
	n, found := root.FirstChild(kind)
	if !found {
		t.Fatalf("no %s block in input", kind)
	}
	return n
}

func assemble(t *testing.T, input string) (*model.Model, *diag.Bag, bool) {
	t.Helper()
	root, bag := makeTree(t, input)
	m, ok := extract.Assemble(root, diag.BagReporter{Bag: bag})
	return m, bag, ok
}

func TestCharacteristicHeaderFields(t *testing.T) {
	input := `/begin CHARACTERISTIC ENG_LIMIT "rev limiter" VALUE 0x1234 RL_S16 CM_RPM
/end CHARACTERISTIC`
	c, err := extract.Characteristic(childNode(t, input, "CHARACTERISTIC"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "ENG_LIMIT" {
		t.Errorf("name: got %q", c.Name)
	}
	if c.Description != "rev limiter" {
		t.Errorf("description: got %q", c.Description)
	}
	if c.Type != "VALUE" {
		t.Errorf("type: got %q", c.Type)
	}
	if c.Address != 0x1234 {
		t.Errorf("address: got %#x", c.Address)
	}
	if c.RecordLayout != "RL_S16" {
		t.Errorf("record layout: got %q", c.RecordLayout)
	}
	if c.CompuMethod != "CM_RPM" {
		t.Errorf("compu method: got %q", c.CompuMethod)
	}
}

func TestCharacteristicWithMaxDiff(t *testing.T) {
	input := `/begin CHARACTERISTIC K_FAC "factor" VALUE 0x8000 RL_F32 1.5 CM_FAC 0.0 10.0
  SYMBOL_LINK "k_fac" 0
/end CHARACTERISTIC`
	c, err := extract.Characteristic(childNode(t, input, "CHARACTERISTIC"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MaxDiff != 1.5 {
		t.Errorf("max diff: got %v", c.MaxDiff)
	}
	if c.CompuMethod != "CM_FAC" {
		t.Errorf("compu method after max diff: got %q", c.CompuMethod)
	}
	if c.LowerLimit != 0 || c.UpperLimit != 10 {
		t.Errorf("limits: got %v..%v", c.LowerLimit, c.UpperLimit)
	}
	if c.SymbolLink == nil || c.SymbolLink.Symbol != "k_fac" {
		t.Errorf("symbol link: got %+v", c.SymbolLink)
	}
}

func TestCharacteristicFieldsSpreadOverBody(t *testing.T) {
	input := `/begin CHARACTERISTIC
  SPEED_MAP
  "speed map"
  MAP
  0x80001000
  RL_MAP
  CM_SPEED
  EXTENDED_LIMITS -50.0 300.0
/end CHARACTERISTIC`
	c, err := extract.Characteristic(childNode(t, input, "CHARACTERISTIC"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "SPEED_MAP" || c.Type != "MAP" || c.Address != 0x80001000 {
		t.Errorf("positional body fields: %+v", c)
	}
	if c.LowerLimit != -50 || c.UpperLimit != 300 {
		t.Errorf("extended limits: got %v..%v", c.LowerLimit, c.UpperLimit)
	}
}

func TestCharacteristicEmptyHeader(t *testing.T) {
	input := "/begin CHARACTERISTIC\n/end CHARACTERISTIC"
	_, err := extract.Characteristic(childNode(t, input, "CHARACTERISTIC"))
	if err == nil {
		t.Fatal("expected an error for a fieldless block")
	}
	e, ok := err.(*extract.Error)
	if !ok {
		t.Fatalf("expected *extract.Error, got %T", err)
	}
	if e.Code != diag.ExtEmptyHeader {
		t.Errorf("expected ExtEmptyHeader, got %v", e.Code)
	}
}

func TestCharacteristicBlankName(t *testing.T) {
	input := `/begin CHARACTERISTIC "" "desc" VALUE 0x10 RL CM
/end CHARACTERISTIC`
	_, err := extract.Characteristic(childNode(t, input, "CHARACTERISTIC"))
	if err == nil {
		t.Fatal("expected an error for a blank name")
	}
	e, ok := err.(*extract.Error)
	if !ok {
		t.Fatalf("expected *extract.Error, got %T", err)
	}
	if e.Code != diag.ExtMissingName {
		t.Errorf("expected ExtMissingName, got %v", e.Code)
	}
}

func TestMeasurementParamsAndLimits(t *testing.T) {
	input := `/begin MEASUREMENT rpm "engine speed" UWORD CM_RPM 1 100 0.0 8000.0
  ECU_ADDRESS 0x40001000
/end MEASUREMENT`
	m, err := extract.Measurement(childNode(t, input, "MEASUREMENT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Datatype != "UWORD" || m.CompuMethod != "CM_RPM" {
		t.Errorf("datatype/compu: %q %q", m.Datatype, m.CompuMethod)
	}
	if len(m.Params) != 2 || m.Params[0] != "1" || m.Params[1] != "100" {
		t.Errorf("params: got %v", m.Params)
	}
	if m.LowerLimit != 0 || m.UpperLimit != 8000 {
		t.Errorf("limits: got %v..%v", m.LowerLimit, m.UpperLimit)
	}
	if m.ECUAddress != 0x40001000 {
		t.Errorf("ecu address: got %#x", m.ECUAddress)
	}
}

func TestMeasurementTwoNumbersAreLimits(t *testing.T) {
	input := `/begin MEASUREMENT t "temp" SWORD CM_T 0.0 150.0
/end MEASUREMENT`
	m, err := extract.Measurement(childNode(t, input, "MEASUREMENT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Params) != 0 {
		t.Errorf("expected no params, got %v", m.Params)
	}
	if m.LowerLimit != 0 || m.UpperLimit != 150 {
		t.Errorf("limits: got %v..%v", m.LowerLimit, m.UpperLimit)
	}
}

func TestAxisPts(t *testing.T) {
	input := `/begin AXIS_PTS spd_axis "speed axis" 0x9000 N_SPD RL_AX 0 CM_SPD 16 0.0 250.0
  BYTE_ORDER MSB_LAST
  FORMAT "%5.1"
/end AXIS_PTS`
	a, err := extract.AxisPts(childNode(t, input, "AXIS_PTS"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Name != "spd_axis" || a.InputQuantity != "N_SPD" || a.RecordLayout != "RL_AX" {
		t.Errorf("fields: %+v", a)
	}
	if a.MaxAxisPoints != 16 || a.UpperLimit != 250 {
		t.Errorf("points/limits: %d %v", a.MaxAxisPoints, a.UpperLimit)
	}
	if a.ByteOrder != "MSB_LAST" || a.Format != "%5.1" {
		t.Errorf("keyword fields: %q %q", a.ByteOrder, a.Format)
	}
}

func TestCompuMethodCoeffs(t *testing.T) {
	input := `/begin COMPU_METHOD CM_RPM "speed conversion" RAT_FUNC "%6.0" "rpm"
  COEFFS 0 1 0 0 0 4
/end COMPU_METHOD`
	cm, err := extract.CompuMethod(childNode(t, input, "COMPU_METHOD"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cm.MethodType != "RAT_FUNC" || cm.Format != "%6.0" || cm.Unit != "rpm" {
		t.Errorf("fields: %+v", cm)
	}
	want := []float64{0, 1, 0, 0, 0, 4}
	if len(cm.Coeffs) != len(want) {
		t.Fatalf("coeffs: got %v", cm.Coeffs)
	}
	for i, v := range want {
		if cm.Coeffs[i] != v {
			t.Errorf("coeff %d: got %v, want %v", i, cm.Coeffs[i], v)
		}
	}
}

func TestCompuVTabWithCount(t *testing.T) {
	input := `/begin COMPU_VTAB CM_GEAR "gear names" TAB_VERB 3
  0 "neutral"
  1 "first"
  2 "second"
/end COMPU_VTAB`
	vt, err := extract.CompuVTab(childNode(t, input, "COMPU_VTAB"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vt.Entries) != 3 {
		t.Fatalf("entries: got %v", vt.Entries)
	}
	if vt.Entries[0].Value != 0 || vt.Entries[0].Label != "neutral" {
		t.Errorf("entry 0: %+v", vt.Entries[0])
	}
	if vt.Entries[2].Value != 2 || vt.Entries[2].Label != "second" {
		t.Errorf("entry 2: %+v", vt.Entries[2])
	}
}

func TestCompuVTabWithoutCount(t *testing.T) {
	input := `/begin COMPU_VTAB CM_ST "states" TAB_VERB
  0 "off"
  1 "on"
/end COMPU_VTAB`
	vt, err := extract.CompuVTab(childNode(t, input, "COMPU_VTAB"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Without a count the leading 0 could be mistaken for one; the pair
	// arithmetic rules that out here.
	if len(vt.Entries) != 2 {
		t.Fatalf("entries: got %v", vt.Entries)
	}
	if vt.Entries[0].Label != "off" || vt.Entries[1].Label != "on" {
		t.Errorf("labels: %+v", vt.Entries)
	}
}

func TestRecordLayout(t *testing.T) {
	input := `/begin RECORD_LAYOUT RL_MAP_S16
  FNC_VALUES 1 SWORD ROW_DIR DIRECT
  AXIS_PTS_X 2 SWORD INDEX_INCR DIRECT
/end RECORD_LAYOUT`
	rl, err := extract.RecordLayout(childNode(t, input, "RECORD_LAYOUT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Name != "RL_MAP_S16" {
		t.Errorf("name: got %q", rl.Name)
	}
	if len(rl.Entries) != 2 {
		t.Fatalf("entries: got %v", rl.Entries)
	}
	if rl.Entries[0] != "FNC_VALUES 1 SWORD ROW_DIR DIRECT" {
		t.Errorf("entry 0: got %q", rl.Entries[0])
	}
}

func TestGroupAndFunction(t *testing.T) {
	input := `/begin GROUP engine "engine signals"
  /begin REF_MEASUREMENT rpm temp load
  /end REF_MEASUREMENT
/end GROUP
/begin FUNCTION inj "injection"
  /begin LOC_MEASUREMENT tia tib
  /end LOC_MEASUREMENT
/end FUNCTION`
	root, _ := makeTree(t, input)

	gNode, _ := root.FirstChild("GROUP")
	g, err := extract.Group(gNode)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(g.RefMeasurements) != 3 || g.RefMeasurements[1] != "temp" {
		t.Errorf("refs: got %v", g.RefMeasurements)
	}

	fNode, _ := root.FirstChild("FUNCTION")
	f, err := extract.Function(fNode)
	if err != nil {
		t.Fatalf("function: %v", err)
	}
	if len(f.LocMeasurements) != 2 || f.LocMeasurements[0] != "tia" {
		t.Errorf("locs: got %v", f.LocMeasurements)
	}
}

func TestProtocolLayer(t *testing.T) {
	input := `/begin PROTOCOL_LAYER
  0x0100 0x03E8 0x2710 0x00 0x00 0x00 0x00 0x00 0xFC 0x05DC 0x00
  BYTE_ORDER_MSB_LAST ADDRESS_GRANULARITY_BYTE
  OPTIONAL_CMD GET_COMM_MODE_INFO
  OPTIONAL_CMD GET_ID
  COMMUNICATION_MODE_SUPPORTED BLOCK SLAVE MASTER 0x02 0x01
/end PROTOCOL_LAYER`
	pl, err := extract.ProtocolLayer(childNode(t, input, "PROTOCOL_LAYER"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pl.Version != 0x0100 {
		t.Errorf("version: got %#x", pl.Version)
	}
	if pl.MaxCTO != 0xFC || pl.MaxDTO != 0x05DC {
		t.Errorf("cto/dto: got %#x %#x", pl.MaxCTO, pl.MaxDTO)
	}
	if pl.ByteOrder != "BYTE_ORDER_MSB_LAST" {
		t.Errorf("byte order: got %q", pl.ByteOrder)
	}
	if pl.AddressGranularity != "ADDRESS_GRANULARITY_BYTE" {
		t.Errorf("granularity: got %q", pl.AddressGranularity)
	}
	if len(pl.OptionalCmds) != 2 || pl.OptionalCmds[1] != "GET_ID" {
		t.Errorf("optional cmds: got %v", pl.OptionalCmds)
	}
	if pl.MasterMaxBS != 2 || pl.MasterMinST != 1 {
		t.Errorf("master: got %d %d", pl.MasterMaxBS, pl.MasterMinST)
	}
}

func TestDaqWithEvents(t *testing.T) {
	input := `/begin DAQ
  DYNAMIC 0x00 0x04 0x00
  IDENTIFICATION_FIELD_TYPE_ABSOLUTE
  GRANULARITY_ODT_ENTRY_SIZE_DAQ_BYTE 0x08
  OVERLOAD_INDICATION_EVENT
  /begin EVENT "EV_10ms" "10ms" 0x00 DAQ 0x01 0x0A 0x06 0x00
  /end EVENT
  /begin EVENT "EV_100ms" "100ms" 0x01 DAQ_STIM 0x01 0x64 0x06 0x01
  /end EVENT
/end DAQ`
	dq, err := extract.Daq(childNode(t, input, "DAQ"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dq.Mode != "DYNAMIC" || dq.MaxEventChannel != 4 {
		t.Errorf("mode/channels: %q %d", dq.Mode, dq.MaxEventChannel)
	}
	if dq.IdentificationFieldType != "IDENTIFICATION_FIELD_TYPE_ABSOLUTE" {
		t.Errorf("id field type: %q", dq.IdentificationFieldType)
	}
	if dq.MaxOdtEntrySizeDaq != 8 {
		t.Errorf("odt entry size: %d", dq.MaxOdtEntrySizeDaq)
	}
	if dq.OverloadIndication != "EVENT" {
		t.Errorf("overload: %q", dq.OverloadIndication)
	}
	if len(dq.Events) != 2 {
		t.Fatalf("events: got %d", len(dq.Events))
	}
	ev := dq.Events[0]
	if ev.Name != "EV_10ms" || ev.ShortName != "10ms" || ev.EventChannelNumber != 0 {
		t.Errorf("event 0 identity: %+v", ev)
	}
	if ev.Type != "DAQ" || ev.Cycle != 0x0A || ev.TimeUnit != 6 {
		t.Errorf("event 0 schedule: %+v", ev)
	}
	if dq.Events[1].Type != "DAQ_STIM" || dq.Events[1].Priority != 1 {
		t.Errorf("event 1: %+v", dq.Events[1])
	}
}

func TestXcpOnCanWithFd(t *testing.T) {
	input := `/begin XCP_ON_CAN
  0x0100
  CAN_ID_MASTER 0x700
  CAN_ID_SLAVE 0x701
  BAUDRATE 500000
  SAMPLE_POINT 80
  SJW 2
  SYNC_EDGE SINGLE
  MAX_DLC_REQUIRED
  /begin CAN_FD
    MAX_DLC 64
    CAN_FD_DATA_TRANSFER_BAUDRATE 2000000
    SECONDARY_SAMPLE_POINT 70
  /end CAN_FD
/end XCP_ON_CAN`
	tc, err := extract.XcpOnCan(childNode(t, input, "XCP_ON_CAN"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Version != 0x0100 || tc.CanIDMaster != 0x700 || tc.CanIDSlave != 0x701 {
		t.Errorf("ids: %+v", tc)
	}
	if tc.Baudrate != 500000 || tc.SamplePoint != 80 || tc.SJW != 2 {
		t.Errorf("bus params: %+v", tc)
	}
	if tc.SyncEdge != "SINGLE" || !tc.MaxDLCRequired {
		t.Errorf("flags: %q %v", tc.SyncEdge, tc.MaxDLCRequired)
	}
	if tc.CanFd == nil {
		t.Fatal("expected CAN FD sub-config")
	}
	if tc.CanFd.MaxDLC != 64 || tc.CanFd.DataTransferBaudrate != 2000000 || tc.CanFd.SecondarySamplePoint != 70 {
		t.Errorf("can fd: %+v", tc.CanFd)
	}
}

func TestMemorySegmentWithSegmentInfo(t *testing.T) {
	input := `/begin MEMORY_SEGMENT Dst80000 "calibration area" DATA FLASH INTERN 0x80000 0x10000 -1 -1 -1 -1 -1
  /begin IF_DATA XCPplus
    /begin SEGMENT 0x01 0x02 0x00 0x00 0x00
      /begin CHECKSUM XCP_CRC_16_CITT
      /end CHECKSUM
      /begin PAGE 0x00 ECU_ACCESS_WITH_XCP_ONLY XCP_READ_ACCESS_WITH_ECU_ONLY XCP_WRITE_ACCESS_WITH_ECU_ONLY
      /end PAGE
      /begin PAGE 0x01 ECU_ACCESS_WITH_XCP_ONLY XCP_READ_ACCESS_WITH_ECU_ONLY XCP_WRITE_ACCESS_NOT_ALLOWED
      /end PAGE
    /end SEGMENT
  /end IF_DATA
/end MEMORY_SEGMENT`
	ms, err := extract.MemorySegment(childNode(t, input, "MEMORY_SEGMENT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Name != "Dst80000" || ms.ClassType != "DATA" || ms.MemoryType != "FLASH" {
		t.Errorf("identity: %+v", ms)
	}
	if ms.Address != 0x80000 || ms.Size != 0x10000 {
		t.Errorf("address/size: %#x %#x", ms.Address, ms.Size)
	}
	if len(ms.Attributes) != 5 {
		t.Errorf("attributes: got %v", ms.Attributes)
	}
	if ms.SegmentInfo == nil {
		t.Fatal("expected segment info")
	}
	si := ms.SegmentInfo
	if si.SegmentNumber != 1 || si.NumPages != 2 {
		t.Errorf("segment: %+v", si)
	}
	if si.ChecksumType != "XCP_CRC_16_CITT" {
		t.Errorf("checksum: %q", si.ChecksumType)
	}
	if len(si.Pages) != 2 || si.Pages[1].XcpWriteAccess != "XCP_WRITE_ACCESS_NOT_ALLOWED" {
		t.Errorf("pages: %+v", si.Pages)
	}
}

func TestAssembleMinimal(t *testing.T) {
	input := `/begin PROJECT demo "demo project"
  /begin MODULE ecu "control unit"
    /begin CHARACTERISTIC limiter "rev limit" VALUE 0x1000 RL_S16 CM_RPM 0.0 8000.0
    /end CHARACTERISTIC
  /end MODULE
/end PROJECT`
	m, bag, ok := assemble(t, input)
	if !ok {
		t.Fatalf("assemble failed: %v", bag.Items())
	}
	if bag.Len() != 0 {
		t.Errorf("expected zero diagnostics, got %v", bag.Items())
	}
	if m.ProjectName != "demo" || m.ModuleName != "ecu" {
		t.Errorf("names: %q %q", m.ProjectName, m.ModuleName)
	}
	if len(m.Characteristics) != 1 || m.Characteristics[0].Name != "limiter" {
		t.Fatalf("characteristics: %+v", m.Characteristics)
	}
}

func TestAssembleFailSoft(t *testing.T) {
	input := `/begin PROJECT p ""
  /begin MODULE m ""
    /begin CHARACTERISTIC good "ok" VALUE 0x10 RL CM 0 1
    /end CHARACTERISTIC
    /begin CHARACTERISTIC
    /end CHARACTERISTIC
  /end MODULE
/end PROJECT`
	m, bag, ok := assemble(t, input)
	if !ok {
		t.Fatal("fail-soft run must still produce a model")
	}
	if len(m.Characteristics) != 1 || m.Characteristics[0].Name != "good" {
		t.Errorf("characteristics: %+v", m.Characteristics)
	}
	errCount := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("expected exactly one extraction error, got %v", bag.Items())
	}
}

func TestAssembleUnknownKindsIgnored(t *testing.T) {
	input := `/begin PROJECT p ""
  /begin MODULE m ""
    /begin A2ML
      some free form content 1 2 3
    /end A2ML
    /begin VARIANT_CODING
    /end VARIANT_CODING
  /end MODULE
/end PROJECT`
	m, bag, ok := assemble(t, input)
	if !ok || m == nil {
		t.Fatal("unknown kinds must not break assembly")
	}
	if bag.Len() != 0 {
		t.Errorf("expected zero diagnostics, got %v", bag.Items())
	}
}

func TestAssembleMissingProject(t *testing.T) {
	input := "/begin MODULE m \"\"\n/end MODULE"
	m, bag, ok := assemble(t, input)
	if ok || m != nil {
		t.Fatal("missing PROJECT must fail")
	}
	if bag.Items()[0].Code != diag.StrMissingProject {
		t.Errorf("expected StrMissingProject, got %v", bag.Items()[0].Code)
	}
}

func TestAssembleMissingModule(t *testing.T) {
	input := "/begin PROJECT p \"\"\n/end PROJECT"
	_, bag, ok := assemble(t, input)
	if ok {
		t.Fatal("missing MODULE must fail")
	}
	if bag.Items()[0].Code != diag.StrMissingModule {
		t.Errorf("expected StrMissingModule, got %v", bag.Items()[0].Code)
	}
}

func TestAssembleIfDataXcp(t *testing.T) {
	input := `/begin PROJECT p ""
  /begin MODULE m ""
    /begin IF_DATA XCPplus
      /begin PROTOCOL_LAYER 0x0103 1000 2000 0 0 0 0 0 8 8
      /end PROTOCOL_LAYER
      /begin DAQ
        STATIC 0x02 0x02 0x00
        /begin EVENT "sync" "sync" 0x00 DAQ 0x01 0x0A 0x06 0x00
        /end EVENT
      /end DAQ
      /begin XCP_ON_CAN 0x0100
        CAN_ID_MASTER 0x700
      /end XCP_ON_CAN
    /end IF_DATA
  /end MODULE
/end PROJECT`
	m, bag, ok := assemble(t, input)
	if !ok {
		t.Fatalf("assemble failed: %v", bag.Items())
	}
	if m.ProtocolLayer == nil || m.ProtocolLayer.Version != 0x0103 {
		t.Errorf("protocol layer: %+v", m.ProtocolLayer)
	}
	if m.Daq == nil || m.Daq.Mode != "STATIC" {
		t.Errorf("daq: %+v", m.Daq)
	}
	if len(m.DaqEvents) != 1 || m.DaqEvents[0].Name != "sync" {
		t.Errorf("flattened events: %+v", m.DaqEvents)
	}
	if m.XcpOnCan == nil || m.XcpOnCan.CanIDMaster != 0x700 {
		t.Errorf("xcp on can: %+v", m.XcpOnCan)
	}
}

func TestAssembleModPar(t *testing.T) {
	input := `/begin PROJECT p ""
  /begin MODULE m ""
    /begin MOD_PAR "comment"
      /begin MEMORY_SEGMENT seg1 "one" DATA FLASH INTERN 0x1000 0x100
      /end MEMORY_SEGMENT
      /begin MEMORY_SEGMENT seg2 "two" CODE FLASH INTERN 0x2000 0x200
      /end MEMORY_SEGMENT
    /end MOD_PAR
  /end MODULE
/end PROJECT`
	m, bag, ok := assemble(t, input)
	if !ok {
		t.Fatalf("assemble failed: %v", bag.Items())
	}
	if len(m.MemorySegments) != 2 {
		t.Fatalf("segments: %+v", m.MemorySegments)
	}
	if m.MemorySegments[1].Name != "seg2" || m.MemorySegments[1].Address != 0x2000 {
		t.Errorf("segment 2: %+v", m.MemorySegments[1])
	}
}

func TestExtractionIsIdempotent(t *testing.T) {
	input := `/begin PROJECT p "proj"
  /begin MODULE m "mod"
    /begin IF_DATA XCPplus
      /begin PROTOCOL_LAYER 0x0103 1000 2000 0 0 0 0 0 8 8 0
      /end PROTOCOL_LAYER
      /begin DAQ STATIC 2 4 0
        /begin EVENT "sync" "sync" 0 DAQ 1 10 6 0
        /end EVENT
      /end DAQ
    /end IF_DATA
    /begin CHARACTERISTIC limiter "rev limit" VALUE 0x1000 RL_S16 CM_RPM 0.0 8000.0
      SYMBOL_LINK "limiter" 0
    /end CHARACTERISTIC
    /begin MEASUREMENT rpm "speed" UWORD CM_RPM 1 0 0.0 8000.0
    /end MEASUREMENT
    /begin COMPU_METHOD CM_RPM "rpm" RAT_FUNC "%5.0" "1/min"
      COEFFS 0 1 0 0 0 1
    /end COMPU_METHOD
  /end MODULE
/end PROJECT`
	root, bag := makeTree(t, input)

	first, ok := extract.Assemble(root, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("assemble failed: %v", bag.Items())
	}
	second, ok := extract.Assemble(root, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatal("repeated assembly failed")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated assembly differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if bag.Len() != 0 {
		t.Errorf("expected zero diagnostics, got %v", bag.Items())
	}

	proj, _ := root.FirstChild("PROJECT")
	mod, _ := proj.FirstChild("MODULE")
	ch, found := mod.FirstChild("CHARACTERISTIC")
	if !found {
		t.Fatal("no CHARACTERISTIC node")
	}
	c1, err1 := extract.Characteristic(ch)
	c2, err2 := extract.Characteristic(ch)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(c1, c2) {
		t.Errorf("repeated extraction differs:\nfirst:  %+v\nsecond: %+v", c1, c2)
	}
}
