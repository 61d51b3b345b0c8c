package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dm/t8-go/internal/client"
)

func TestSystemInfo(t *testing.T) {
	var buf bytes.Buffer
	SystemInfo(&buf, &client.SystemInfo{
		FullSerial: "T8-000123",
		Model:      "T8",
		Variant:    "E",
		Version:    "2.1",
		Revision:   "r4",
		HWVersion:  3,
		Host:       "t8-box",
	})

	out := buf.String()
	assert.Contains(t, out, "T8-000123")
	assert.Contains(t, out, "T8 E")
	assert.NotContains(t, out, "Exp Module")
}

func TestSystemInfoExpModule(t *testing.T) {
	var buf bytes.Buffer
	SystemInfo(&buf, &client.SystemInfo{
		ExpModule: "EXP4",
		ExpSerial: "E-77",
	})
	assert.Contains(t, buf.String(), "EXP4 (E-77)")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	Status(&buf, &client.Status{
		Timestamp: 1554907724,
		BoardTemp: 43.25,
		CPUTemp:   51.0,
		VInput:    12.1,
		DataMount: client.MountInfo{Device: "/dev/sda1", Total: 2048, Used: 1024},
	})

	out := buf.String()
	assert.Contains(t, out, "2019-04-10T14:48:44Z")
	assert.Contains(t, out, "43.2 °C")
	assert.Contains(t, out, "12.10 V")
	assert.Contains(t, out, "/dev/sda1")
	assert.Contains(t, out, "2.0 KB")
}

func TestLicenseSortsByNumber(t *testing.T) {
	var buf bytes.Buffer
	License(&buf, &client.License{
		Features: []client.LicenseFeature{
			{Abbrev: "SP", Name: "spectra", Number: 2},
			{Abbrev: "WF", Name: "waves", Number: 1},
		},
	}, "T8-000123")

	out := buf.String()
	assert.Less(t, strings.Index(out, "waves"), strings.Index(out, "spectra"))
}

func TestSnapshot(t *testing.T) {
	var buf bytes.Buffer
	Snapshot(&buf, &client.Snapshot{
		Tag:     "nominal",
		T:       1554892596,
		ConfID:  json.Number("4"),
		Speed:   24.7,
		StateID: 2,
	})

	out := buf.String()
	assert.Contains(t, out, "nominal")
	assert.Contains(t, out, "24.7 Hz")
}

func TestWave(t *testing.T) {
	var buf bytes.Buffer
	Wave(&buf, &client.Wave{
		Path:       "LP_Turbine:MAD32CY005:AM2",
		Speed:      25.5,
		SampleRate: 5120,
		Data:       make([]float32, 2560),
	})

	out := buf.String()
	assert.Contains(t, out, "LP_Turbine:MAD32CY005:AM2")
	assert.Contains(t, out, "5120 Hz")
	assert.Contains(t, out, "2,560")
	assert.Contains(t, out, "0.500 s")
}

func TestSpectrum(t *testing.T) {
	var buf bytes.Buffer
	Spectrum(&buf, &client.Spectrum{
		Window:  client.WindowHanning,
		MinFreq: 2,
		MaxFreq: 500,
		Data:    make([]float32, 400),
	})

	out := buf.String()
	assert.Contains(t, out, "hanning")
	assert.Contains(t, out, "500 Hz")
	assert.Contains(t, out, "400")
}

func TestTriples(t *testing.T) {
	var buf bytes.Buffer
	Triples(&buf, []client.ProcMode{
		{Machine: "LP_Turbine", Point: "MAD32CY005", Tag: "AM2"},
	})

	out := buf.String()
	assert.Contains(t, out, "Machine")
	assert.Contains(t, out, "LP_Turbine")
	assert.Contains(t, out, "AM2")
}

func TestTimestampsFiltersZero(t *testing.T) {
	var buf bytes.Buffer
	Timestamps(&buf, []int64{1633024800, 0, 1633111200})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"2021-09-30T18:00:00Z", "2021-10-01T18:00:00Z"}, lines)
}
