// Copyright 2026 The wedgecal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command wedgecal calibrates a keyboard-wedge barcode scanner against the
// host it is plugged into, walking an operator through a baseline probe and
// any dead-key follow-ups it surfaces, then reports what came back.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/ossbarcode/wedgecal"
	"github.com/ossbarcode/wedgecal/internal/charsetref"
	"github.com/ossbarcode/wedgecal/internal/jsonref"
	"github.com/ossbarcode/wedgecal/internal/localeref"
	"github.com/ossbarcode/wedgecal/internal/renderref"
)

var cli struct {
	Calibrate  calibrateCmd  `cmd:"" help:"Run an interactive calibration session."`
	Replay     replayCmd     `cmd:"" help:"Replay previously captured probe replies from a file."`
	Normalize  normalizeCmd  `cmd:"" help:"Normalize raw scanner output using a saved calibration report."`
	ProbeImage probeImageCmd `cmd:"" help:"Render a probe payload to a PNG barcode image."`
}

type calibrateCmd struct {
	Boundary string `default:" " help:"Boundary character used in the baseline probe."`
	MaxChars int    `default:"0" help:"Maximum characters per probe segment (0 = unsegmented)."`
	Charset  string `help:"Host terminal charset, for non-UTF-8 locales (e.g. ISO8859-15)." optional:""`
	Out      string `help:"Path to write the resulting calibration report as JSON." optional:""`
}

func (c *calibrateCmd) Run() error {
	charsetref.Register()

	boundary := []rune(c.Boundary)
	cfg := wedgecal.DefaultCalibrationConfig()
	if len(boundary) == 1 {
		cfg.Boundary = boundary[0]
	}
	cfg.MaxSegmentChars = c.MaxChars

	sess, err := wedgecal.NewSession(cfg)
	if err != nil {
		return err
	}

	catalog := localeref.English()
	reader := bufio.NewReader(os.Stdin)
	start := time.Now()

	// listen for an operator-initiated cancel (Ctrl-C) right away, mirroring
	// the retrieved part5 iecat command's signal-then-loop shutdown pattern.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT)
	defer signal.Stop(signals)

	for !sess.Done() {
		probe, err := sess.NextProbe()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, catalog.Message("scan.next-probe", map[string]string{"payload": controlSafe(probe)}))
		fmt.Fprintln(os.Stderr, catalog.Message("scan.awaiting-report", nil))

		lineCh := make(chan string, 1)
		go func() {
			line, _ := reader.ReadString('\n')
			lineCh <- line
		}()

		select {
		case sig := <-signals:
			fmt.Fprintln(os.Stderr, catalog.Message("scan.cancelled", map[string]string{"signal": sig.String()}))
			if _, err := sess.Accept("", true); err != nil && err != wedgecal.ErrCancelledByUser {
				return err
			}
		case line := <-lineCh:
			decoded, err := wedgecal.DecodeReport([]byte(line), c.Charset)
			if err != nil {
				return err
			}
			if _, err := sess.Accept(decoded, false); err != nil {
				return err
			}
		}
	}

	sess.RecordTiming(wedgecal.Timing{TotalDuration: time.Since(start), Bucket: wedgecal.PerformanceHumanTyped})

	report, err := sess.Result()
	if err != nil {
		return err
	}

	printReport(report)

	if c.Out != "" {
		var codec jsonref.Codec
		data, err := codec.Encode(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.Out, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

type replayCmd struct {
	File string `arg:"" help:"Path to a file of newline-separated probe replies, in issue order."`
}

func (c *replayCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	cfg := wedgecal.DefaultCalibrationConfig()
	sess, err := wedgecal.NewSession(cfg)
	if err != nil {
		return err
	}

	lines := splitLines(string(data))
	i := 0
	for !sess.Done() {
		if i >= len(lines) {
			return fmt.Errorf("replay file ran out of replies before calibration finished")
		}
		if _, err := sess.NextProbe(); err != nil {
			return err
		}
		if _, err := sess.Accept(lines[i], false); err != nil {
			return err
		}
		i++
	}
	report, err := sess.Result()
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

type normalizeCmd struct {
	Report string `arg:"" help:"Path to a calibration report JSON file."`
	Input  string `arg:"" help:"Path to a file of raw scanner output to normalize."`
}

func (c *normalizeCmd) Run() error {
	reportData, err := os.ReadFile(c.Report)
	if err != nil {
		return err
	}
	var codec jsonref.Codec
	report, err := codec.Decode(reportData)
	if err != nil {
		return err
	}
	rawData, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}
	out, err := wedgecal.Normalize(report, string(rawData), wedgecal.DefaultCalibrationConfig())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type probeImageCmd struct {
	Payload string `arg:"" help:"Probe payload text to render."`
	Out     string `arg:"" help:"Path to write the PNG image to."`
}

func (c *probeImageCmd) Run() error {
	var enc renderref.Encoder
	data, err := enc.EncodeBarcode(context.Background(), c.Payload)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Out, data, 0o644)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// reportLabelWidth is the display-cell width of the widest summary label
// below ("characters mapped:"), used to align the value column even when a
// future label runs wider in a double-width locale.
const reportLabelWidth = 18

func padLabel(label string) string {
	return runewidth.FillRight(label, reportLabelWidth)
}

func printReport(report *wedgecal.ScanReport) {
	fmt.Println(headingStyle.Render("wedgecal calibration report"))
	if report.Cancelled {
		fmt.Println(errorStyle.Render(padLabel("cancelled:") + " yes"))
	}
	fmt.Printf("%s %s\n", padLabel("characters mapped:"), humanize.Comma(int64(len(report.CharacterMap))))
	fmt.Printf("%s %s\n", padLabel("dead keys found:"), humanize.Comma(int64(len(report.DeadKeyMap))))
	fmt.Printf("%s %s\n", padLabel("ligatures found:"), humanize.Comma(int64(len(report.LigatureMap))))
	if report.Timing.TotalDuration > 0 {
		fmt.Printf("%s %s\n", padLabel("elapsed:"), humanize.RelTime(time.Now().Add(-report.Timing.TotalDuration), time.Now(), "", ""))
	}
	fmt.Println()
	for _, item := range report.Advice {
		style := infoStyle
		switch item.Severity {
		case wedgecal.SeverityError:
			style = errorStyle
		case wedgecal.SeverityWarning:
			style = warnStyle
		}
		label := padLabel(fmt.Sprintf("[%d]", item.Type))
		fmt.Println(style.Render(fmt.Sprintf("%s %s", label, item.Message)))
	}
	for _, err := range report.Errors {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%s %s", padLabel("[error]"), err.Error())))
	}
}

func controlSafe(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, wedgecal.ToControlPicture(r))
	}
	return string(out)
}

func splitLines(s string) []string {
	var lines []string
	var cur []rune
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, string(cur)+"\n")
			cur = nil
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("wedgecal"),
		kong.Description("Keyboard-wedge barcode scanner calibration."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
