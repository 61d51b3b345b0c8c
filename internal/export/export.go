// Package export writes retrieved telemetry to CSV and JSON files with
// deterministic names derived from the query parameters and the resolved
// snapshot or sample timestamp.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dm/t8-go/internal/client"
)

// WaveFileName names a waveform export: wf_<machine>_<point>_<pmode>_<snapT>.csv.
func WaveFileName(machine, point, pmode string, snapT int64) string {
	return fmt.Sprintf("wf_%s_%s_%s_%d.csv", machine, point, pmode, snapT)
}

// SpectrumFileName names a spectrum export: sp_<machine>_<point>_<pmode>_<snapT>.csv.
func SpectrumFileName(machine, point, pmode string, snapT int64) string {
	return fmt.Sprintf("sp_%s_%s_%s_%d.csv", machine, point, pmode, snapT)
}

// SnapshotFileName names a snapshot export: ss_<machine>_<t>.json.
func SnapshotFileName(machine string, t int64) string {
	return fmt.Sprintf("ss_%s_%d.json", machine, t)
}

// ConfFileName names a configuration export: conf_<fullSerial>_<uid>.json.
func ConfFileName(fullSerial, uid string) string {
	return fmt.Sprintf("conf_%s_%s.json", fullSerial, uid)
}

// MachineTrendFileName names a machine trend export.
func MachineTrendFileName(machine string) string {
	return fmt.Sprintf("trend_mach_%s.csv", machine)
}

// PointTrendFileName names a point trend export.
func PointTrendFileName(machine, point string) string {
	return fmt.Sprintf("trend_point_%s_%s.csv", machine, point)
}

// ProcModeTrendFileName names a processing-mode trend export.
func ProcModeTrendFileName(machine, point, pmode string) string {
	return fmt.Sprintf("trend_pmode_%s_%s_%s.csv", machine, point, pmode)
}

// ParamTrendFileName names a parameter trend export.
func ParamTrendFileName(machine, point, param string) string {
	return fmt.Sprintf("trend_param_%s_%s_%s.csv", machine, point, param)
}

// WriteJSON pretty-prints a raw JSON document to path.
func WriteJSON(path string, raw json.RawMessage) error {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	b, err := json.MarshalIndent(buf, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// writeCSV writes a header row followed by records, closing the file on any
// return path.
func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func ffmt(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteWaveCSV writes Time,Value rows. Sample times span
// [0, duration) at the wave's sample interval, first sample at t=0.
func WriteWaveCSV(path string, wave *client.Wave) error {
	return writeCSV(path, []string{"Time", "Value"}, func(w *csv.Writer) error {
		for i, v := range wave.Data {
			rec := []string{
				ffmt(float64(i) / wave.SampleRate),
				ffmt(float64(v)),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}

// WriteSpectrumCSV writes Frequency,RMS rows. Bin frequencies span the
// closed interval [MinFreq, MaxFreq] linearly.
func WriteSpectrumCSV(path string, sp *client.Spectrum) error {
	n := len(sp.Data)
	step := 0.0
	if n > 1 {
		step = (sp.MaxFreq - sp.MinFreq) / float64(n-1)
	}
	return writeCSV(path, []string{"Frequency", "RMS"}, func(w *csv.Writer) error {
		for i, v := range sp.Data {
			rec := []string{
				ffmt(sp.MinFreq + float64(i)*step),
				ffmt(float64(v)),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}

// WriteMachineTrendCSV writes Timestamp,Speed,Load,State,Alarm,Strategy rows.
func WriteMachineTrendCSV(path string, tr *client.MachineTrend) error {
	header := []string{"Timestamp", "Speed", "Load", "State", "Alarm", "Strategy"}
	return writeCSV(path, header, func(w *csv.Writer) error {
		for i := range tr.T {
			rec := []string{
				strconv.FormatUint(uint64(tr.T[i]), 10),
				ffmt(float64(tr.Speed[i])),
				ffmt(float64(tr.Load[i])),
				strconv.Itoa(int(tr.State[i])),
				strconv.Itoa(int(tr.Alarm[i])),
				strconv.Itoa(int(tr.Strategy[i])),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}

// WritePointTrendCSV writes Timestamp,Alarm,Bias rows.
func WritePointTrendCSV(path string, tr *client.PointTrend) error {
	return writeCSV(path, []string{"Timestamp", "Alarm", "Bias"}, func(w *csv.Writer) error {
		for i := range tr.T {
			rec := []string{
				strconv.FormatUint(uint64(tr.T[i]), 10),
				strconv.Itoa(int(tr.Alarm[i])),
				ffmt(float64(tr.Bias[i])),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}

// WriteProcModeTrendCSV writes Timestamp,Alarm,Mask rows.
func WriteProcModeTrendCSV(path string, tr *client.ProcModeTrend) error {
	return writeCSV(path, []string{"Timestamp", "Alarm", "Mask"}, func(w *csv.Writer) error {
		for i := range tr.T {
			rec := []string{
				strconv.FormatUint(uint64(tr.T[i]), 10),
				strconv.Itoa(int(tr.Alarm[i])),
				strconv.Itoa(int(tr.Mask[i])),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}

// WriteParamTrendCSV writes Timestamp,Value,Alarm,Unit rows.
func WriteParamTrendCSV(path string, tr *client.ParamTrend) error {
	return writeCSV(path, []string{"Timestamp", "Value", "Alarm", "Unit"}, func(w *csv.Writer) error {
		for i := range tr.T {
			rec := []string{
				strconv.FormatUint(uint64(tr.T[i]), 10),
				ffmt(float64(tr.Value[i])),
				strconv.Itoa(int(tr.Alarm[i])),
				strconv.Itoa(int(tr.Unit[i])),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
}
