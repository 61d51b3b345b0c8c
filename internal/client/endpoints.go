package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/dm/t8-go/internal/codec"
	"github.com/dm/t8-go/internal/link"
)

// Waves and spectra default to the zint encoding: the device re-encodes the
// lossless capture into 16-bit integers plus a scale factor, which keeps
// payloads small. Trends always use zlib framing with per-field widths.
const defaultArrayFormat = codec.FormatZlibInt16

func pathJoin(segs ...string) string {
	out := ""
	for _, s := range segs {
		out += "/" + url.PathEscape(s)
	}
	return out
}

// listing fetches a collection endpoint and returns its items in server
// order.
func (c *DefaultClient) listing(ctx context.Context, path string) ([]link.Item, error) {
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	l, err := link.ParseListing(body)
	if err != nil {
		return nil, err
	}
	return l.Items, nil
}

// timestamps fetches a collection endpoint whose item links end in epoch
// timestamps, preserving server order (chronological in practice, but not
// guaranteed by the API).
func (c *DefaultClient) timestamps(ctx context.Context, path string) ([]int64, error) {
	items, err := c.listing(ctx, path)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		t, err := link.Timestamp(it)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// triples fetches a collection endpoint whose item links end in
// machine/point/tag triples, sorted by (machine, point, tag) for
// deterministic output.
func (c *DefaultClient) triples(ctx context.Context, path string) ([]ProcMode, error) {
	items, err := c.listing(ctx, path)
	if err != nil {
		return nil, err
	}
	out := make([]ProcMode, 0, len(items))
	for _, it := range items {
		tr, err := link.TripleOf(it)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

// ListProcModes lists every processing mode in the current configuration.
func (c *DefaultClient) ListProcModes(ctx context.Context) ([]ProcMode, error) {
	modes, err := c.triples(ctx, "/waves")
	if err != nil {
		return nil, fmt.Errorf("ListProcModes: %w", err)
	}
	return modes, nil
}

// ListParams lists every parameter in the current configuration.
func (c *DefaultClient) ListParams(ctx context.Context) ([]ProcMode, error) {
	params, err := c.triples(ctx, "/trends/param")
	if err != nil {
		return nil, fmt.Errorf("ListParams: %w", err)
	}
	return params, nil
}

// ListWaveModeNames lists processing-mode names from the waves listing.
func (c *DefaultClient) ListWaveModeNames(ctx context.Context) ([]string, error) {
	items, err := c.listing(ctx, "/waves")
	if err != nil {
		return nil, fmt.Errorf("ListWaveModeNames: %w", err)
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

// ListConfs lists stored configuration IDs in server order.
func (c *DefaultClient) ListConfs(ctx context.Context) ([]string, error) {
	items, err := c.listing(ctx, "/confs")
	if err != nil {
		return nil, fmt.Errorf("ListConfs: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		id, err := link.LastSegment(it)
		if err != nil {
			return nil, fmt.Errorf("ListConfs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetConf fetches one stored configuration by ID.
func (c *DefaultClient) GetConf(ctx context.Context, id string) (*Conf, error) {
	body, err := c.doGet(ctx, pathJoin("confs", id))
	if err != nil {
		return nil, fmt.Errorf("GetConf: %w", err)
	}
	var conf Conf
	if err := json.Unmarshal(body, &conf); err != nil {
		return nil, fmt.Errorf("GetConf decode: %w", err)
	}
	if conf.UID == "" {
		return nil, fmt.Errorf("GetConf: %w: uid", ErrMissingField)
	}
	conf.Raw = json.RawMessage(body)
	return &conf, nil
}

// ListSnapshots lists snapshot timestamps for a machine in server order.
func (c *DefaultClient) ListSnapshots(ctx context.Context, machine string) ([]int64, error) {
	ts, err := c.timestamps(ctx, pathJoin("snapshots", machine))
	if err != nil {
		return nil, fmt.Errorf("ListSnapshots: %w", err)
	}
	return ts, nil
}

// snapshotResponse is the interpreted subset of a snapshot document.
// Required fields are pointers so their absence is detectable; the rest of
// the document is kept verbatim in Snapshot.Raw.
type snapshotResponse struct {
	Tag     *string      `json:"tag"`
	T       *int64       `json:"t"`
	ConfID  *json.Number `json:"conf_id"`
	Speed   *float64     `json:"speed"`
	StateID *int         `json:"state_id"`
}

// GetSnapshot fetches the snapshot stored at t. A t of 0 is the server-side
// convention for "most recent".
func (c *DefaultClient) GetSnapshot(ctx context.Context, machine string, t int64) (*Snapshot, error) {
	body, err := c.doGet(ctx, pathJoin("snapshots", machine)+fmt.Sprintf("/%d", t))
	if err != nil {
		return nil, fmt.Errorf("GetSnapshot: %w", err)
	}
	var resp snapshotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("GetSnapshot decode: %w", err)
	}
	if err := requireFields(map[string]any{
		"tag":      resp.Tag,
		"t":        resp.T,
		"conf_id":  resp.ConfID,
		"speed":    resp.Speed,
		"state_id": resp.StateID,
	}); err != nil {
		return nil, fmt.Errorf("GetSnapshot: %w", err)
	}
	return &Snapshot{
		Tag:     *resp.Tag,
		T:       *resp.T,
		ConfID:  *resp.ConfID,
		Speed:   *resp.Speed,
		StateID: *resp.StateID,
		Raw:     json.RawMessage(body),
	}, nil
}

// ListWaves lists wave timestamps for a machine/point/pmode in server order.
func (c *DefaultClient) ListWaves(ctx context.Context, machine, point, pmode string) ([]int64, error) {
	ts, err := c.timestamps(ctx, pathJoin("waves", machine, point, pmode))
	if err != nil {
		return nil, fmt.Errorf("ListWaves: %w", err)
	}
	return ts, nil
}

// ListSpectra lists spectrum timestamps for a machine/point/pmode in server
// order.
func (c *DefaultClient) ListSpectra(ctx context.Context, machine, point, pmode string) ([]int64, error) {
	ts, err := c.timestamps(ctx, pathJoin("spectra", machine, point, pmode))
	if err != nil {
		return nil, fmt.Errorf("ListSpectra: %w", err)
	}
	return ts, nil
}

// waveResponse is the wire shape shared by wave and spectrum resources.
// Required fields are pointers so their absence is detectable.
type waveResponse struct {
	Speed      *float64 `json:"speed"`
	T          *float64 `json:"t"`
	SnapT      *float64 `json:"snap_t"`
	UnitID     *int     `json:"unit_id"`
	SampleRate *float64 `json:"sample_rate"`
	MinFreq    *float64 `json:"min_freq"`
	MaxFreq    *float64 `json:"max_freq"`
	Window     *int     `json:"window"`
	Factor     *float64 `json:"factor"`
	Data       *string  `json:"data"`
}

func (r *waveResponse) factor() float64 {
	if r.Factor == nil {
		return 1.0
	}
	return *r.Factor
}

// samples decodes the data payload and applies the server factor
// element-wise.
func (r *waveResponse) samples(format codec.Format) ([]float32, error) {
	if r.Data == nil {
		return nil, fmt.Errorf("%w: data", ErrMissingField)
	}
	data, err := codec.Decode(*r.Data, format)
	if err != nil {
		return nil, err
	}
	f := float32(r.factor())
	for i := range data {
		data[i] *= f
	}
	return data, nil
}

func requireFields(fields map[string]any) error {
	for name, p := range fields {
		switch v := p.(type) {
		case *float64:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *int:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *int64:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *string:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *bool:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *json.Number:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		case *mountResponse:
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingField, name)
			}
		}
	}
	return nil
}

// GetWave fetches the waveform stored at t (0 = most recent) and assembles
// it into physical units.
func (c *DefaultClient) GetWave(ctx context.Context, machine, point, pmode string, t int64) (*Wave, error) {
	path := pathJoin("waves", machine, point, pmode) +
		fmt.Sprintf("/%d?array_fmt=%s", t, defaultArrayFormat)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("GetWave: %w", err)
	}

	var resp waveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("GetWave decode: %w", err)
	}
	if err := requireFields(map[string]any{
		"speed":       resp.Speed,
		"t":           resp.T,
		"snap_t":      resp.SnapT,
		"unit_id":     resp.UnitID,
		"sample_rate": resp.SampleRate,
	}); err != nil {
		return nil, fmt.Errorf("GetWave: %w", err)
	}

	data, err := resp.samples(defaultArrayFormat)
	if err != nil {
		return nil, fmt.Errorf("GetWave: %w", err)
	}

	return &Wave{
		Path:       machine + ":" + point + ":" + pmode,
		Speed:      *resp.Speed,
		T:          *resp.T,
		SnapT:      int64(*resp.SnapT),
		UnitID:     *resp.UnitID,
		SampleRate: *resp.SampleRate,
		Data:       data,
	}, nil
}

// GetSpectrum fetches the spectrum stored at t (0 = most recent) and
// assembles it into physical units.
func (c *DefaultClient) GetSpectrum(ctx context.Context, machine, point, pmode string, t int64) (*Spectrum, error) {
	path := pathJoin("spectra", machine, point, pmode) +
		fmt.Sprintf("/%d?array_fmt=%s", t, defaultArrayFormat)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("GetSpectrum: %w", err)
	}

	var resp waveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("GetSpectrum decode: %w", err)
	}
	if err := requireFields(map[string]any{
		"speed":    resp.Speed,
		"t":        resp.T,
		"snap_t":   resp.SnapT,
		"unit_id":  resp.UnitID,
		"min_freq": resp.MinFreq,
		"max_freq": resp.MaxFreq,
		"window":   resp.Window,
	}); err != nil {
		return nil, fmt.Errorf("GetSpectrum: %w", err)
	}
	if *resp.Window < int(WindowRect) || *resp.Window > int(WindowBlackman) {
		return nil, fmt.Errorf("GetSpectrum: %w: window %d", ErrInvalidField, *resp.Window)
	}
	if *resp.MinFreq >= *resp.MaxFreq {
		return nil, fmt.Errorf("GetSpectrum: %w: min_freq %g not below max_freq %g",
			ErrInvalidField, *resp.MinFreq, *resp.MaxFreq)
	}

	data, err := resp.samples(defaultArrayFormat)
	if err != nil {
		return nil, fmt.Errorf("GetSpectrum: %w", err)
	}

	return &Spectrum{
		Path:    machine + ":" + point + ":" + pmode,
		Speed:   *resp.Speed,
		T:       *resp.T,
		SnapT:   int64(*resp.SnapT),
		UnitID:  *resp.UnitID,
		MinFreq: *resp.MinFreq,
		MaxFreq: *resp.MaxFreq,
		Window:  Window(*resp.Window),
		Data:    data,
	}, nil
}

// trendBody unmarshals a trend response into its per-field payload strings.
// Field keys carry a type-code suffix naming the element width: I→uint32,
// f→float32, B→uint8, H→uint16.
func trendBody(body []byte, op string) (map[string]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			// Non-string members (counters etc.) are not array fields.
			continue
		}
		out[k] = s
	}
	return out, nil
}

func trendField(fields map[string]string, key, op string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%s: %w: %s", op, ErrMissingField, key)
	}
	return raw, nil
}

// checkAligned enforces the trend invariant that every decoded array has
// the same length.
func checkAligned(op string, lengths ...int) error {
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return fmt.Errorf("%s: %w: %v", op, ErrLengthMismatch, lengths)
		}
	}
	return nil
}

// GetMachineTrend fetches machine-level trend series.
func (c *DefaultClient) GetMachineTrend(ctx context.Context, machine string) (*MachineTrend, error) {
	const op = "GetMachineTrend"
	body, err := c.doGet(ctx, pathJoin("trends", "mach", machine)+"?array_fmt=zlib")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fields, err := trendBody(body, op)
	if err != nil {
		return nil, err
	}

	var tr MachineTrend
	if tr.T, err = decodeTrendUint32(fields, "t.I", op); err != nil {
		return nil, err
	}
	if tr.Speed, err = decodeTrendFloat32(fields, "speed.f", op); err != nil {
		return nil, err
	}
	if tr.Load, err = decodeTrendFloat32(fields, "load.f", op); err != nil {
		return nil, err
	}
	if tr.Alarm, err = decodeTrendUint8(fields, "alarm.B", op); err != nil {
		return nil, err
	}
	if tr.State, err = decodeTrendUint8(fields, "state.B", op); err != nil {
		return nil, err
	}
	if tr.Strategy, err = decodeTrendUint8(fields, "strategy.B", op); err != nil {
		return nil, err
	}
	if err := checkAligned(op, len(tr.T), len(tr.Speed), len(tr.Load),
		len(tr.Alarm), len(tr.State), len(tr.Strategy)); err != nil {
		return nil, err
	}
	return &tr, nil
}

// GetPointTrend fetches point-level trend series.
func (c *DefaultClient) GetPointTrend(ctx context.Context, machine, point string) (*PointTrend, error) {
	const op = "GetPointTrend"
	body, err := c.doGet(ctx, pathJoin("trends", "point", machine, point)+"?array_fmt=zlib")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fields, err := trendBody(body, op)
	if err != nil {
		return nil, err
	}

	var tr PointTrend
	if tr.T, err = decodeTrendUint32(fields, "t.I", op); err != nil {
		return nil, err
	}
	if tr.Alarm, err = decodeTrendUint8(fields, "alarm.B", op); err != nil {
		return nil, err
	}
	if tr.Bias, err = decodeTrendFloat32(fields, "bias.f", op); err != nil {
		return nil, err
	}
	if err := checkAligned(op, len(tr.T), len(tr.Alarm), len(tr.Bias)); err != nil {
		return nil, err
	}
	return &tr, nil
}

// GetProcModeTrend fetches processing-mode-level trend series.
func (c *DefaultClient) GetProcModeTrend(ctx context.Context, machine, point, pmode string) (*ProcModeTrend, error) {
	const op = "GetProcModeTrend"
	body, err := c.doGet(ctx, pathJoin("trends", "pmode", machine, point, pmode)+"?array_fmt=zlib")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fields, err := trendBody(body, op)
	if err != nil {
		return nil, err
	}

	var tr ProcModeTrend
	if tr.T, err = decodeTrendUint32(fields, "t.I", op); err != nil {
		return nil, err
	}
	if tr.Alarm, err = decodeTrendUint8(fields, "alarm.B", op); err != nil {
		return nil, err
	}
	if tr.Mask, err = decodeTrendUint8(fields, "mask.B", op); err != nil {
		return nil, err
	}
	if err := checkAligned(op, len(tr.T), len(tr.Alarm), len(tr.Mask)); err != nil {
		return nil, err
	}
	return &tr, nil
}

// GetParamTrend fetches parameter-level trend series.
func (c *DefaultClient) GetParamTrend(ctx context.Context, machine, point, param string) (*ParamTrend, error) {
	const op = "GetParamTrend"
	body, err := c.doGet(ctx, pathJoin("trends", "param", machine, point, param)+"?array_fmt=zlib")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fields, err := trendBody(body, op)
	if err != nil {
		return nil, err
	}

	var tr ParamTrend
	if tr.T, err = decodeTrendUint32(fields, "t.I", op); err != nil {
		return nil, err
	}
	if tr.Value, err = decodeTrendFloat32(fields, "value.f", op); err != nil {
		return nil, err
	}
	if tr.Alarm, err = decodeTrendUint8(fields, "alarm.B", op); err != nil {
		return nil, err
	}
	if tr.Unit, err = decodeTrendUint16(fields, "unit.H", op); err != nil {
		return nil, err
	}
	if err := checkAligned(op, len(tr.T), len(tr.Value), len(tr.Alarm), len(tr.Unit)); err != nil {
		return nil, err
	}
	return &tr, nil
}

func decodeTrendUint32(fields map[string]string, key, op string) ([]uint32, error) {
	raw, err := trendField(fields, key, op)
	if err != nil {
		return nil, err
	}
	vals, err := codec.DecodeUint32(raw, codec.FormatZlibFloat32)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, key, err)
	}
	return vals, nil
}

func decodeTrendFloat32(fields map[string]string, key, op string) ([]float32, error) {
	raw, err := trendField(fields, key, op)
	if err != nil {
		return nil, err
	}
	vals, err := codec.Decode(raw, codec.FormatZlibFloat32)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, key, err)
	}
	return vals, nil
}

func decodeTrendUint8(fields map[string]string, key, op string) ([]uint8, error) {
	raw, err := trendField(fields, key, op)
	if err != nil {
		return nil, err
	}
	vals, err := codec.DecodeUint8(raw, codec.FormatZlibFloat32)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, key, err)
	}
	return vals, nil
}

func decodeTrendUint16(fields map[string]string, key, op string) ([]uint16, error) {
	raw, err := trendField(fields, key, op)
	if err != nil {
		return nil, err
	}
	vals, err := codec.DecodeUint16(raw, codec.FormatZlibFloat32)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, key, err)
	}
	return vals, nil
}

// mountResponse is the wire shape of one storage mount.
type mountResponse struct {
	Device   *string `json:"device"`
	Path     *string `json:"path"`
	Total    *int64  `json:"total"`
	Used     *int64  `json:"used"`
	Volatile *bool   `json:"volatile"`
}

// mountInfo validates the mount's required keys and assembles it. name
// prefixes the reported field so errors say which mount was incomplete.
func (m *mountResponse) mountInfo(name string) (MountInfo, error) {
	if err := requireFields(map[string]any{
		name + ".device":   m.Device,
		name + ".path":     m.Path,
		name + ".total":    m.Total,
		name + ".used":     m.Used,
		name + ".volatile": m.Volatile,
	}); err != nil {
		return MountInfo{}, err
	}
	return MountInfo{
		Device:   *m.Device,
		Path:     *m.Path,
		Total:    *m.Total,
		Used:     *m.Used,
		Volatile: *m.Volatile,
	}, nil
}

type statusResponse struct {
	Timestamp *int64   `json:"timestamp"`
	UpTime    *float64 `json:"up_time"`
	IdleTime  *float64 `json:"idle_time"`

	Host         *string `json:"host"`
	HWAddr       *string `json:"hw_addr"`
	IPAddr       *string `json:"ip_addr"`
	Gateway      *string `json:"gateway"`
	PrefixLength *int    `json:"prefix_length"`
	DHCPEnabled  *bool   `json:"dhcp_enabled"`

	DataMount *mountResponse `json:"data_mount"`
	RWMount   *mountResponse `json:"rw_mount"`

	BoardTemp *float64 `json:"board_temp"`
	CPUTemp   *float64 `json:"cpu_temp"`
	VBat      *float64 `json:"vbat"`
	VInput    *float64 `json:"vinput"`
	FanPWM    *int     `json:"fan_pwm"`
}

// GetStatus fetches the device status from info/status.
func (c *DefaultClient) GetStatus(ctx context.Context) (*Status, error) {
	body, err := c.doGet(ctx, "/info/status")
	if err != nil {
		return nil, fmt.Errorf("GetStatus: %w", err)
	}
	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("GetStatus decode: %w", err)
	}
	if err := requireFields(map[string]any{
		"timestamp":     resp.Timestamp,
		"up_time":       resp.UpTime,
		"idle_time":     resp.IdleTime,
		"host":          resp.Host,
		"hw_addr":       resp.HWAddr,
		"ip_addr":       resp.IPAddr,
		"gateway":       resp.Gateway,
		"prefix_length": resp.PrefixLength,
		"dhcp_enabled":  resp.DHCPEnabled,
		"data_mount":    resp.DataMount,
		"rw_mount":      resp.RWMount,
		"board_temp":    resp.BoardTemp,
		"cpu_temp":      resp.CPUTemp,
		"vbat":          resp.VBat,
		"vinput":        resp.VInput,
		"fan_pwm":       resp.FanPWM,
	}); err != nil {
		return nil, fmt.Errorf("GetStatus: %w", err)
	}
	dataMount, err := resp.DataMount.mountInfo("data_mount")
	if err != nil {
		return nil, fmt.Errorf("GetStatus: %w", err)
	}
	rwMount, err := resp.RWMount.mountInfo("rw_mount")
	if err != nil {
		return nil, fmt.Errorf("GetStatus: %w", err)
	}
	return &Status{
		Timestamp:    *resp.Timestamp,
		UpTime:       *resp.UpTime,
		IdleTime:     *resp.IdleTime,
		Host:         *resp.Host,
		HWAddr:       *resp.HWAddr,
		IPAddr:       *resp.IPAddr,
		Gateway:      *resp.Gateway,
		PrefixLength: *resp.PrefixLength,
		DHCPEnabled:  *resp.DHCPEnabled,
		DataMount:    dataMount,
		RWMount:      rwMount,
		BoardTemp:    *resp.BoardTemp,
		CPUTemp:      *resp.CPUTemp,
		VBat:         *resp.VBat,
		VInput:       *resp.VInput,
		FanPWM:       *resp.FanPWM,
	}, nil
}

// licenseResponse is the wire shape of the nested license record.
type licenseResponse struct {
	ChangedAt *int64           `json:"changed_at"`
	ExpiresAt *int64           `json:"expires_at"`
	Features  []LicenseFeature `json:"features"`
}

// systemInfoResponse is the wire shape of info/system. exp_module,
// exp_serial and license are nullable on unlicensed or unexpanded devices;
// everything else is required.
type systemInfoResponse struct {
	Serial        *int64  `json:"serial"`
	FullSerial    *string `json:"full_serial"`
	Model         *string `json:"model"`
	Variant       *string `json:"variant"`
	Version       *string `json:"version"`
	Revision      *string `json:"revision"`
	HWVersion     *int    `json:"hw_version"`
	BoardModel    *string `json:"board_model"`
	BoardRevision *int    `json:"board_revision"`
	CPUSerial     *int64  `json:"cpu_serial"`
	Host          *string `json:"host"`
	EnableNTP     *bool   `json:"enable_ntp"`
	ExpModule     string  `json:"exp_module"`
	ExpSerial     string  `json:"exp_serial"`
	InstalledTime *int64  `json:"installed_time"`

	License *licenseResponse `json:"license"`
}

// GetSystemInfo fetches device information from info/system.
func (c *DefaultClient) GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	body, err := c.doGet(ctx, "/info/system")
	if err != nil {
		return nil, fmt.Errorf("GetSystemInfo: %w", err)
	}
	var resp systemInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("GetSystemInfo decode: %w", err)
	}
	if err := requireFields(map[string]any{
		"serial":         resp.Serial,
		"full_serial":    resp.FullSerial,
		"model":          resp.Model,
		"variant":        resp.Variant,
		"version":        resp.Version,
		"revision":       resp.Revision,
		"hw_version":     resp.HWVersion,
		"board_model":    resp.BoardModel,
		"board_revision": resp.BoardRevision,
		"cpu_serial":     resp.CPUSerial,
		"host":           resp.Host,
		"enable_ntp":     resp.EnableNTP,
		"installed_time": resp.InstalledTime,
	}); err != nil {
		return nil, fmt.Errorf("GetSystemInfo: %w", err)
	}

	var lic *License
	if resp.License != nil {
		if err := requireFields(map[string]any{
			"license.changed_at": resp.License.ChangedAt,
			"license.expires_at": resp.License.ExpiresAt,
		}); err != nil {
			return nil, fmt.Errorf("GetSystemInfo: %w", err)
		}
		lic = &License{
			ChangedAt: *resp.License.ChangedAt,
			ExpiresAt: *resp.License.ExpiresAt,
			Features:  resp.License.Features,
		}
	}

	return &SystemInfo{
		Serial:        *resp.Serial,
		FullSerial:    *resp.FullSerial,
		Model:         *resp.Model,
		Variant:       *resp.Variant,
		Version:       *resp.Version,
		Revision:      *resp.Revision,
		HWVersion:     *resp.HWVersion,
		BoardModel:    *resp.BoardModel,
		BoardRevision: *resp.BoardRevision,
		CPUSerial:     *resp.CPUSerial,
		Host:          *resp.Host,
		EnableNTP:     *resp.EnableNTP,
		ExpModule:     resp.ExpModule,
		ExpSerial:     resp.ExpSerial,
		InstalledTime: *resp.InstalledTime,
		License:       lic,
	}, nil
}
