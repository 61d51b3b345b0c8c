package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/t8-go/internal/client"
	"github.com/dm/t8-go/internal/config"
	"github.com/dm/t8-go/internal/export"
	"github.com/dm/t8-go/internal/render"
	"github.com/dm/t8-go/internal/timefmt"
	"github.com/dm/t8-go/internal/tui"
)

const usageText = `usage: t8 [--host URL] [--user U] [--passw P] <command> [args]

commands:
  info                              device information
  license                           license and feature table
  status                            current device status
  config list                       stored configuration ids
  config get --id ID                fetch a configuration (writes conf_*.json)
  config proc-modes                 processing modes, sorted
  config params                     parameters, sorted
  snapshot list --machine M         snapshot timestamps
  snapshot get --machine M [--time T]   fetch a snapshot (writes ss_*.json)
  wave list --machine M --point P --pmode PM
  wave get --machine M --point P --pmode PM [--time T]   writes wf_*.csv
  wave modes                        processing-mode names
  spectrum list --machine M --point P --pmode PM
  spectrum get --machine M --point P --pmode PM [--time T]   writes sp_*.csv
  trend machine --machine M         writes trend_mach_*.csv
  trend point --machine M --point P
  trend pmode --machine M --point P --pmode PM
  trend param --machine M --point P --param PAR
  watch [--interval 10s]            live status dashboard

Host, credentials and timeout may also come from T8_HOST, T8_USER,
T8_PASSW and T8_TIMEOUT, or from a t8.yaml in . or ~/.config/t8/.
Timestamps are ISO-8601; omitting --time selects the most recent item.
`

// parseEpoch converts a --time flag value to epoch seconds. The empty
// string selects the server's "most recent" sentinel.
func parseEpoch(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}
	return timefmt.Parse(text)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	global := flag.NewFlagSet("t8", flag.ExitOnError)
	var (
		host     = global.String("host", cfg.Host, "T8 base URL")
		user     = global.String("user", cfg.User, "basic auth username")
		passw    = global.String("passw", cfg.Passw, "basic auth password")
		timeout  = global.Duration("timeout", cfg.Timeout, "per-request timeout")
		insecure = global.Bool("insecure", cfg.Insecure, "skip TLS certificate verification")
	)
	global.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		global.PrintDefaults()
	}
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		global.Usage()
		os.Exit(1)
	}

	c, err := client.NewDefaultClient(client.ClientConfig{
		Host:               *host,
		Username:           *user,
		Password:           *passw,
		InsecureSkipVerify: *insecure,
		RequestTimeout:     *timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := dispatch(ctx, c, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, c client.T8Client, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		return cmdInfo(ctx, c)
	case "license":
		return cmdLicense(ctx, c)
	case "status":
		return cmdStatus(ctx, c)
	case "config":
		return cmdConfig(ctx, c, rest)
	case "snapshot":
		return cmdSnapshot(ctx, c, rest)
	case "wave":
		return cmdWave(ctx, c, rest)
	case "spectrum":
		return cmdSpectrum(ctx, c, rest)
	case "trend":
		return cmdTrend(ctx, c, rest)
	case "watch":
		return cmdWatch(c, rest)
	default:
		return fmt.Errorf("unknown command %q (run t8 -h for usage)", cmd)
	}
}

// subAction pops the sub-action name from args, e.g. the "list" in
// "t8 wave list".
func subAction(parent string, args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%s: missing action (run t8 -h for usage)", parent)
	}
	return args[0], args[1:], nil
}

func required(fs *flag.FlagSet, vals map[string]string) error {
	for name, v := range vals {
		if v == "" {
			return fmt.Errorf("%s: --%s is required", fs.Name(), name)
		}
	}
	return nil
}

func cmdInfo(ctx context.Context, c client.T8Client) error {
	info, err := c.GetSystemInfo(ctx)
	if err != nil {
		return err
	}
	render.SystemInfo(os.Stdout, info)
	return nil
}

func cmdLicense(ctx context.Context, c client.T8Client) error {
	info, err := c.GetSystemInfo(ctx)
	if err != nil {
		return err
	}
	if info.License == nil {
		return fmt.Errorf("license: device reported no license record")
	}
	render.License(os.Stdout, info.License, info.FullSerial)
	return nil
}

func cmdStatus(ctx context.Context, c client.T8Client) error {
	st, err := c.GetStatus(ctx)
	if err != nil {
		return err
	}
	render.Status(os.Stdout, st)
	return nil
}

func cmdConfig(ctx context.Context, c client.T8Client, args []string) error {
	action, rest, err := subAction("config", args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		ids, err := c.ListConfs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			// id 0 is the device's live configuration, not a stored one.
			if id == "0" {
				continue
			}
			fmt.Println(id)
		}
		return nil
	case "get":
		fs := flag.NewFlagSet("config get", flag.ExitOnError)
		id := fs.String("id", "", "configuration id")
		_ = fs.Parse(rest)
		if err := required(fs, map[string]string{"id": *id}); err != nil {
			return err
		}
		conf, err := c.GetConf(ctx, *id)
		if err != nil {
			return err
		}
		info, err := c.GetSystemInfo(ctx)
		if err != nil {
			return err
		}
		name := export.ConfFileName(info.FullSerial, conf.UID.String())
		fmt.Printf("Saving configuration to %s\n", name)
		return export.WriteJSON(name, conf.Raw)
	case "proc-modes":
		modes, err := c.ListProcModes(ctx)
		if err != nil {
			return err
		}
		render.Triples(os.Stdout, modes)
		return nil
	case "params":
		params, err := c.ListParams(ctx)
		if err != nil {
			return err
		}
		render.Triples(os.Stdout, params)
		return nil
	default:
		return fmt.Errorf("config: unknown action %q", action)
	}
}

func cmdSnapshot(ctx context.Context, c client.T8Client, args []string) error {
	action, rest, err := subAction("snapshot", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("snapshot "+action, flag.ExitOnError)
	machine := fs.String("machine", "", "machine tag")
	at := fs.String("time", "", "snapshot timestamp (ISO-8601, default most recent)")
	_ = fs.Parse(rest)
	if err := required(fs, map[string]string{"machine": *machine}); err != nil {
		return err
	}

	switch action {
	case "list":
		epochs, err := c.ListSnapshots(ctx, *machine)
		if err != nil {
			return err
		}
		render.Timestamps(os.Stdout, epochs)
		return nil
	case "get":
		t, err := parseEpoch(*at)
		if err != nil {
			return err
		}
		snap, err := c.GetSnapshot(ctx, *machine, t)
		if err != nil {
			return err
		}
		render.Snapshot(os.Stdout, snap)
		name := export.SnapshotFileName(*machine, snap.T)
		fmt.Printf("Saving snapshot to %s\n", name)
		return export.WriteJSON(name, snap.Raw)
	default:
		return fmt.Errorf("snapshot: unknown action %q", action)
	}
}

func cmdWave(ctx context.Context, c client.T8Client, args []string) error {
	action, rest, err := subAction("wave", args)
	if err != nil {
		return err
	}
	if action == "modes" {
		names, err := c.ListWaveModeNames(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	fs := flag.NewFlagSet("wave "+action, flag.ExitOnError)
	machine := fs.String("machine", "", "machine tag")
	point := fs.String("point", "", "measurement point")
	pmode := fs.String("pmode", "", "processing mode")
	at := fs.String("time", "", "capture timestamp (ISO-8601, default most recent)")
	_ = fs.Parse(rest)
	if err := required(fs, map[string]string{"machine": *machine, "point": *point, "pmode": *pmode}); err != nil {
		return err
	}

	switch action {
	case "list":
		epochs, err := c.ListWaves(ctx, *machine, *point, *pmode)
		if err != nil {
			return err
		}
		render.Timestamps(os.Stdout, epochs)
		return nil
	case "get":
		t, err := parseEpoch(*at)
		if err != nil {
			return err
		}
		wave, err := c.GetWave(ctx, *machine, *point, *pmode, t)
		if err != nil {
			return err
		}
		render.Wave(os.Stdout, wave)
		name := export.WaveFileName(*machine, *point, *pmode, wave.SnapT)
		fmt.Printf("Saving waveform to %s\n", name)
		return export.WriteWaveCSV(name, wave)
	default:
		return fmt.Errorf("wave: unknown action %q", action)
	}
}

func cmdSpectrum(ctx context.Context, c client.T8Client, args []string) error {
	action, rest, err := subAction("spectrum", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("spectrum "+action, flag.ExitOnError)
	machine := fs.String("machine", "", "machine tag")
	point := fs.String("point", "", "measurement point")
	pmode := fs.String("pmode", "", "processing mode")
	at := fs.String("time", "", "capture timestamp (ISO-8601, default most recent)")
	_ = fs.Parse(rest)
	if err := required(fs, map[string]string{"machine": *machine, "point": *point, "pmode": *pmode}); err != nil {
		return err
	}

	switch action {
	case "list":
		epochs, err := c.ListSpectra(ctx, *machine, *point, *pmode)
		if err != nil {
			return err
		}
		render.Timestamps(os.Stdout, epochs)
		return nil
	case "get":
		t, err := parseEpoch(*at)
		if err != nil {
			return err
		}
		sp, err := c.GetSpectrum(ctx, *machine, *point, *pmode, t)
		if err != nil {
			return err
		}
		render.Spectrum(os.Stdout, sp)
		name := export.SpectrumFileName(*machine, *point, *pmode, sp.SnapT)
		fmt.Printf("Saving spectrum to %s\n", name)
		return export.WriteSpectrumCSV(name, sp)
	default:
		return fmt.Errorf("spectrum: unknown action %q", action)
	}
}

func cmdTrend(ctx context.Context, c client.T8Client, args []string) error {
	action, rest, err := subAction("trend", args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("trend "+action, flag.ExitOnError)
	machine := fs.String("machine", "", "machine tag")
	point := fs.String("point", "", "measurement point")
	pmode := fs.String("pmode", "", "processing mode")
	param := fs.String("param", "", "parameter name")
	_ = fs.Parse(rest)

	switch action {
	case "machine":
		if err := required(fs, map[string]string{"machine": *machine}); err != nil {
			return err
		}
		tr, err := c.GetMachineTrend(ctx, *machine)
		if err != nil {
			return err
		}
		name := export.MachineTrendFileName(*machine)
		fmt.Printf("Saving %d trend rows to %s\n", len(tr.T), name)
		return export.WriteMachineTrendCSV(name, tr)
	case "point":
		if err := required(fs, map[string]string{"machine": *machine, "point": *point}); err != nil {
			return err
		}
		tr, err := c.GetPointTrend(ctx, *machine, *point)
		if err != nil {
			return err
		}
		name := export.PointTrendFileName(*machine, *point)
		fmt.Printf("Saving %d trend rows to %s\n", len(tr.T), name)
		return export.WritePointTrendCSV(name, tr)
	case "pmode":
		if err := required(fs, map[string]string{"machine": *machine, "point": *point, "pmode": *pmode}); err != nil {
			return err
		}
		tr, err := c.GetProcModeTrend(ctx, *machine, *point, *pmode)
		if err != nil {
			return err
		}
		name := export.ProcModeTrendFileName(*machine, *point, *pmode)
		fmt.Printf("Saving %d trend rows to %s\n", len(tr.T), name)
		return export.WriteProcModeTrendCSV(name, tr)
	case "param":
		if err := required(fs, map[string]string{"machine": *machine, "point": *point, "param": *param}); err != nil {
			return err
		}
		tr, err := c.GetParamTrend(ctx, *machine, *point, *param)
		if err != nil {
			return err
		}
		name := export.ParamTrendFileName(*machine, *point, *param)
		fmt.Printf("Saving %d trend rows to %s\n", len(tr.T), name)
		return export.WriteParamTrendCSV(name, tr)
	default:
		return fmt.Errorf("trend: unknown action %q", action)
	}
}

func cmdWatch(c client.T8Client, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	interval := fs.Duration("interval", 10*time.Second, "polling interval (e.g. 10s, 30s)")
	_ = fs.Parse(args)
	if *interval <= 0 {
		return fmt.Errorf("watch: --interval must be positive")
	}

	p := tea.NewProgram(tui.NewApp(c, *interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
