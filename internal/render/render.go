// Package render formats retrieved entities for the console. It writes to
// an io.Writer so output stays testable; only cmd/t8 binds it to stdout.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dm/t8-go/internal/client"
	"github.com/dm/t8-go/internal/format"
	"github.com/dm/t8-go/internal/timefmt"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleTitle  = lipgloss.NewStyle().Bold(true)
)

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%-14s %v\n", label+":", value)
}

// SystemInfo prints the device information sheet.
func SystemInfo(w io.Writer, info *client.SystemInfo) {
	fmt.Fprintln(w, styleTitle.Render("T8 System Information"))
	field(w, "Serial", info.FullSerial)
	field(w, "Model", info.Model+" "+info.Variant)
	field(w, "Version", info.Version)
	field(w, "Revision", info.Revision)
	field(w, "HW Version", info.HWVersion)
	field(w, "Host", info.Host)
	if info.ExpModule != "" {
		field(w, "Exp Module", fmt.Sprintf("%s (%s)", info.ExpModule, info.ExpSerial))
	}
}

func mountInfo(w io.Writer, m client.MountInfo) {
	fmt.Fprintf(w, "    %-10s %s\n", "Device:", m.Device)
	fmt.Fprintf(w, "    %-10s %s\n", "Path:", m.Path)
	fmt.Fprintf(w, "    %-10s %s\n", "Total:", format.FormatBytes(m.Total))
	fmt.Fprintf(w, "    %-10s %s\n", "Used:", format.FormatBytes(m.Used))
	fmt.Fprintf(w, "    %-10s %v\n", "Volatile:", m.Volatile)
}

// Status prints the device status sheet.
func Status(w io.Writer, st *client.Status) {
	fmt.Fprintln(w, styleTitle.Render("T8 Status"))
	field(w, "Time", timefmt.Format(st.Timestamp))
	field(w, "Uptime", format.FormatSeconds(st.UpTime))
	field(w, "Board Temp", format.FormatCelsius(st.BoardTemp))
	field(w, "CPU Temp", format.FormatCelsius(st.CPUTemp))
	field(w, "Input Voltage", format.FormatVolts(st.VInput))
	field(w, "Fan PWM", st.FanPWM)
	field(w, "Host", st.Host)
	field(w, "HW Addr", st.HWAddr)
	field(w, "IP Addr", st.IPAddr)
	field(w, "Gateway", st.Gateway)
	field(w, "DHCP Enabled", st.DHCPEnabled)
	fmt.Fprintln(w, "Data Mount:")
	mountInfo(w, st.DataMount)
}

// License prints the license sheet plus the features table, sorted by
// feature number.
func License(w io.Writer, lic *client.License, serial string) {
	fmt.Fprintln(w, styleTitle.Render("License Information"))
	field(w, "Serial", serial)
	field(w, "Changed at", timefmt.Format(lic.ChangedAt))
	field(w, "Expires at", timefmt.Format(lic.ExpiresAt))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Features:")

	features := make([]client.LicenseFeature, len(lic.Features))
	copy(features, lic.Features)
	sort.Slice(features, func(i, j int) bool { return features[i].Number < features[j].Number })

	tbl := newTable("Number", "Abbrev", "Name", "Description", "Enabled")
	for _, f := range features {
		tbl.Row(strconv.Itoa(f.Number), f.Abbrev, f.Name, f.Desc, strconv.FormatBool(f.Enabled))
	}
	fmt.Fprintln(w, tbl.Render())
}

// Snapshot prints the snapshot sheet.
func Snapshot(w io.Writer, snap *client.Snapshot) {
	field(w, "Tag", snap.Tag)
	field(w, "Timestamp", timefmt.Format(snap.T))
	field(w, "Conf ID", snap.ConfID.String())
	field(w, "Speed", format.FormatHz(snap.Speed))
	field(w, "State", snap.StateID)
}

// Wave prints the waveform sheet.
func Wave(w io.Writer, wave *client.Wave) {
	field(w, "Path", wave.Path)
	field(w, "Speed", format.FormatHz(wave.Speed))
	field(w, "Timestamp", timefmt.Format(int64(wave.T)))
	field(w, "Snapshot", timefmt.Format(wave.SnapT))
	field(w, "Unit ID", wave.UnitID)
	field(w, "Sample rate", format.FormatHz(wave.SampleRate))
	field(w, "Samples", format.FormatNumber(int64(len(wave.Data))))
	field(w, "Duration", format.FormatSeconds(wave.Duration()))
}

// Spectrum prints the spectrum sheet.
func Spectrum(w io.Writer, sp *client.Spectrum) {
	field(w, "Path", sp.Path)
	field(w, "Speed", format.FormatHz(sp.Speed))
	field(w, "Timestamp", timefmt.Format(int64(sp.T)))
	field(w, "Snapshot", timefmt.Format(sp.SnapT))
	field(w, "Unit ID", sp.UnitID)
	field(w, "Max. freq", format.FormatHz(sp.MaxFreq))
	field(w, "Min. freq", format.FormatHz(sp.MinFreq))
	field(w, "Window", sp.Window)
	field(w, "Bins", format.FormatNumber(int64(len(sp.Data))))
}

// Triples prints a machine/point/tag table for processing-mode and
// parameter listings.
func Triples(w io.Writer, items []client.ProcMode) {
	tbl := newTable("Machine", "Point", "Tag")
	for _, it := range items {
		tbl.Row(it.Machine, it.Point, it.Tag)
	}
	fmt.Fprintln(w, tbl.Render())
}

// Timestamps prints listing timestamps as ISO-8601 lines, one per entry,
// with the 0 sentinel filtered.
func Timestamps(w io.Writer, epochs []int64) {
	for _, line := range timefmt.FormatMany(epochs) {
		fmt.Fprintln(w, line)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
}
