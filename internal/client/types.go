package client

import (
	"encoding/json"
	"fmt"

	"github.com/dm/t8-go/internal/link"
)

// ProcMode identifies a processing mode or parameter within the resource
// namespace.
type ProcMode = link.Triple

// Window is the spectral analysis window function applied before producing
// a spectrum.
type Window int

const (
	WindowRect Window = iota
	WindowHanning
	WindowHamming
	WindowBlackman
)

func (w Window) String() string {
	switch w {
	case WindowRect:
		return "rect"
	case WindowHanning:
		return "hanning"
	case WindowHamming:
		return "hamming"
	case WindowBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// Wave is a time-domain waveform capture. Data holds physical-unit samples:
// the transport payload decoded and multiplied by the server factor.
type Wave struct {
	Path       string // machine:point:pmode
	Speed      float64
	T          float64 // timestamp of the first sample
	SnapT      int64   // timestamp of the owning snapshot
	UnitID     int
	SampleRate float64
	Data       []float32
}

// Duration returns the capture length in seconds.
func (w *Wave) Duration() float64 {
	return float64(len(w.Data)) / w.SampleRate
}

// Spectrum is a frequency-domain capture whose bins linearly span the
// closed interval [MinFreq, MaxFreq].
type Spectrum struct {
	Path    string
	Speed   float64
	T       float64
	SnapT   int64
	UnitID  int
	MinFreq float64
	MaxFreq float64
	Window  Window
	Data    []float32
}

// MachineTrend holds machine-level trend series. All slices are aligned by
// index and have equal length.
type MachineTrend struct {
	T        []uint32
	Speed    []float32
	Load     []float32
	Alarm    []uint8
	State    []uint8
	Strategy []uint8
}

// PointTrend holds point-level trend series.
type PointTrend struct {
	T     []uint32
	Alarm []uint8
	Bias  []float32
}

// ProcModeTrend holds processing-mode-level trend series.
type ProcModeTrend struct {
	T     []uint32
	Alarm []uint8
	Mask  []uint8
}

// ParamTrend holds parameter-level trend series.
type ParamTrend struct {
	T     []uint32
	Value []float32
	Alarm []uint8
	Unit  []uint16
}

// LicenseFeature is one licensable capability of the device.
type LicenseFeature struct {
	Abbrev  string `json:"abbrev"`
	Desc    string `json:"desc"`
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"`
	Number  int    `json:"number"`
}

// License describes the device's installed license.
type License struct {
	ChangedAt int64
	ExpiresAt int64
	Features  []LicenseFeature
}

// SystemInfo is the response from info/system.
type SystemInfo struct {
	Serial        int64
	FullSerial    string
	Model         string
	Variant       string
	Version       string
	Revision      string
	HWVersion     int
	BoardModel    string
	BoardRevision int
	CPUSerial     int64
	Host          string
	EnableNTP     bool
	ExpModule     string
	ExpSerial     string
	InstalledTime int64
	License       *License
}

// MountInfo describes one storage mount of the device.
type MountInfo struct {
	Device   string
	Path     string
	Total    int64
	Used     int64
	Volatile bool
}

// Status is the response from info/status.
type Status struct {
	Timestamp int64
	UpTime    float64
	IdleTime  float64

	Host         string
	HWAddr       string
	IPAddr       string
	Gateway      string
	PrefixLength int
	DHCPEnabled  bool

	DataMount MountInfo
	RWMount   MountInfo

	BoardTemp float64
	CPUTemp   float64
	VBat      float64
	VInput    float64
	FanPWM    int
}

// Snapshot is one stored point-in-time capture of device configuration and
// state. Raw keeps the full response body so callers can persist the
// snapshot verbatim.
type Snapshot struct {
	Tag     string
	T       int64
	ConfID  json.Number
	Speed   float64
	StateID int

	Raw json.RawMessage
}

// Conf is one stored device configuration. The body is schema-free, only
// the uid is interpreted; Raw keeps the full document for persistence.
type Conf struct {
	UID json.Number `json:"uid"`

	Raw json.RawMessage `json:"-"`
}
