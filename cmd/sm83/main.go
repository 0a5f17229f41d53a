// Command sm83 runs a ROM headlessly on the SM83 core, printing the
// serial output to stdout. It is mainly used to run test ROMs such as
// blargg's cpu_instrs, which report their results over serial.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/thelolagemann/sm83/internal/debug"
	"github.com/thelolagemann/sm83/internal/gameboy"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

const statsAddress = "localhost:12600"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.New().Fatal(err.Error())
	}
}

// serialWatcher echoes serial output and remembers everything it has
// seen, so the run can stop once a given string appears.
type serialWatcher struct {
	out  io.Writer
	seen bytes.Buffer
}

func (s *serialWatcher) Write(p []byte) (int, error) {
	s.seen.Write(p)
	return s.out.Write(p)
}

func (s *serialWatcher) contains(text string) bool {
	return text != "" && bytes.Contains(s.seen.Bytes(), []byte(text))
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sm83", flag.ContinueOnError)
	romFile := fs.String("rom", "", "The rom file to load")
	bootROM := fs.String("boot", "", "The boot rom file to load")
	frames := fs.Int("frames", 60*60, "The maximum number of frames to run")
	traceFile := fs.String("trace", "", "Write a trace of every instruction to this file")
	histogram := fs.String("histogram", "", "Render a histogram of executed instructions to this png")
	digest := fs.Bool("digest", false, "Print a digest of the machine state once finished")
	stats := fs.Bool("statsview", false, "Serve runtime statistics at "+statsAddress+"/debug/statsview")
	logLevel := fs.String("log-level", "info", "The log level (debug, info, warn, error)")
	until := fs.String("until", "", "Stop once the serial output contains this text")
	noHaltBug := fs.Bool("no-halt-bug", false, "Disable emulation of the HALT bug")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := log.WithLevel(*logLevel)
	if err != nil {
		return err
	}
	if *romFile == "" {
		return fmt.Errorf("no rom file given, use -rom")
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		return err
	}

	serialOut := &serialWatcher{out: stdout}
	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithSerialOutput(serialOut),
	}

	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *noHaltBug {
		opts = append(opts, gameboy.WithoutHaltBug())
	}

	var tracer *debug.TraceLogger
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			return err
		}
		defer f.Close()
		tracer = debug.NewTraceLogger(f)
		opts = append(opts, gameboy.WithTrace(tracer.Trace))
	}

	var hist *debug.Histogram
	if *histogram != "" {
		hist = debug.NewHistogram()
		opts = append(opts, gameboy.WithTrace(hist.Trace))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}
	if tracer != nil {
		tracer.SetBus(gb.MMU)
	}

	if *stats {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsAddress))
			mgr := statsview.New()
			mgr.Start()
		}()
		logger.Infof("stats server available at %s/debug/statsview", statsAddress)
	}

	ran := 0
	for ; ran < *frames; ran++ {
		if err := gb.RunFrame(); err != nil {
			return err
		}
		if serialOut.contains(*until) || gb.CPU.Locked() {
			ran++
			break
		}
	}
	logger.Debugf("ran %d frames (%d cycles)", ran, gb.CPU.Cycles())

	if tracer != nil {
		if err := tracer.Flush(); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	if hist != nil {
		if err := hist.SavePNG(*histogram); err != nil {
			return err
		}
		for _, op := range hist.Top(5) {
			logger.Infof("opcode 0x%02X (%s): %d", op.Opcode, op.Family, op.Count)
		}
	}
	if *digest {
		fmt.Fprintf(stdout, "\ndigest: %016x\n", gb.Digest())
	}

	if *until != "" && !serialOut.contains(*until) {
		return fmt.Errorf("serial output did not contain %q after %d frames", *until, ran)
	}
	return nil
}
