package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/metro/config"
	"github.com/robmorgan/metro/control"
	"github.com/robmorgan/metro/fixture"
	"github.com/robmorgan/metro/logger"
	"github.com/robmorgan/metro/output"
	"github.com/robmorgan/metro/rhythm"
	"github.com/robmorgan/metro/state"
	"github.com/robmorgan/metro/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

// logFile receives the log while the terminal UI owns the screen.
const logFile = "~/.metro/metro.log"

// Options are the command line settings that are not part of the config file.
type Options struct {
	Headless bool

	// Tempo and Signature override the restored session when set.
	Tempo     int
	Signature string
}

var flags struct {
	configPath string
	statePath  string
	logLevel   string
	bpm        int
	signature  string
	osc        bool
	dmx        bool
	audio      bool
	headless   bool
	universe   int
}

var rootCmd = &cobra.Command{
	Use:          "metro",
	Short:        "A practice metronome with tap tempo, accents and OSC/DMX/audio pulses",
	SilenceUsage: true,
	RunE:         runMetro,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the DMX values OLA currently holds for a universe",
	RunE:  runDump,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flags.statePath, "state", "", "session file (default "+state.DefaultStatePath+")")
	rootCmd.Flags().IntVar(&flags.bpm, "bpm", 0, "start at this tempo instead of the saved one")
	rootCmd.Flags().StringVar(&flags.signature, "signature", "", "start in this time signature instead of the saved one")
	rootCmd.Flags().BoolVar(&flags.osc, "osc", false, "send pulses over OSC")
	rootCmd.Flags().BoolVar(&flags.dmx, "dmx", false, "flash the patched fixtures through OLA")
	rootCmd.Flags().BoolVar(&flags.audio, "audio", false, "play a click on every pulse")
	rootCmd.Flags().BoolVar(&flags.headless, "headless", false, "run without the terminal UI and start playing")
	dumpCmd.Flags().IntVar(&flags.universe, "universe", 1, "DMX universe")

	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.MetroConfig, error) {
	cfg, err := config.LoadMetroConfig(flags.configPath)
	if err != nil {
		return cfg, err
	}

	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("state") {
		cfg.StatePath = flags.statePath
	}
	if cmd.Flags().Changed("osc") {
		cfg.OSC.Enabled = flags.osc
	}
	if cmd.Flags().Changed("dmx") {
		cfg.DMX.Enabled = flags.dmx
	}
	if cmd.Flags().Changed("audio") {
		cfg.Audio.Enabled = flags.audio
	}
	return cfg, nil
}

func runMetro(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	return Run(cmd.Context(), cfg, Options{
		Headless:  flags.headless,
		Tempo:     flags.bpm,
		Signature: flags.signature,
	})
}

// Run starts the metronome and its outputs and blocks until the UI quits or, headless, until interrupted.
func Run(ctx context.Context, cfg config.MetroConfig, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logger.GetProjectLogger()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return errors.WithStackTrace(err)
	}

	if !opts.Headless {
		f, err := openLogFile()
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	wg := sync.WaitGroup{}

	log.Info("Initializing metronome...")
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}
	met, err := rhythm.NewMetronome(clock.RealClock{}, registry, cfg.DefaultSignature)
	if err != nil {
		return err
	}

	store, err := state.NewFileStore(cfg.StatePath)
	if err != nil {
		return err
	}
	restoreSession(met, store, cfg)

	if opts.Tempo > 0 {
		met.SetTempo(opts.Tempo)
	}
	if opts.Signature != "" {
		if err := met.SelectSignature(opts.Signature); err != nil {
			return err
		}
	}

	sinks := outputs(ctx, cfg, &wg)
	var pulses *ui.PulseSink
	if !opts.Headless {
		pulses = ui.NewPulseSink()
		sinks = append(sinks, pulses)
	}

	fanout := output.NewFanout(sinks...)
	met.OnPulse(fanout.Publish)
	fanout.Run(ctx, &wg)

	master := control.NewMaster(clock.RealClock{}, met, store)
	master.ProcessForever(ctx, &wg)

	if opts.Headless {
		master.EnQueue(control.Start())

		// handle CTRL+C interrupt
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		select {
		case <-quit:
		case <-ctx.Done():
		}
	} else {
		model, err := ui.NewModel(master, pulses.Pulses(), cfg.DMX.HighColor, cfg.DMX.LowColor)
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			log.Errorf("terminal ui failed: %v", err)
		}
	}

	log.Info("shutting down metro")
	met.Stop()
	cancel()
	wg.Wait()
	return nil
}

// restoreSession applies the saved session. Without one, the configured tempo is used.
func restoreSession(met *rhythm.Metronome, store state.Store, cfg config.MetroConfig) {
	log := logger.GetProjectLogger()

	blob, err := store.Load()
	if err != nil {
		log.Warnf("could not read saved session: %v", err)
		blob = ""
	}
	if blob == "" {
		met.SetTempo(cfg.Tempo)
		return
	}

	// problems are logged by state.Load and the rest of the session is still applied
	_ = state.Load(met, blob)
	log.WithFields(logrus.Fields{"bpm": met.GetTempo(), "signature": met.Snapshot().Active}).Info("session restored")
}

// outputs builds every enabled pulse output. An output that cannot be opened is logged and skipped.
func outputs(ctx context.Context, cfg config.MetroConfig, wg *sync.WaitGroup) []output.Sink {
	log := logger.GetProjectLogger()
	var sinks []output.Sink

	if cfg.OSC.Enabled {
		log.WithFields(logrus.Fields{"host": cfg.OSC.Host, "port": cfg.OSC.Port}).Info("Sending OSC pulses...")
		sinks = append(sinks, output.NewOSCSink(cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.Prefix))
	}

	if cfg.Audio.Enabled {
		click, err := output.NewClickSink(cfg.Audio)
		if err != nil {
			log.Errorf("could not open audio output: %v", err)
		} else {
			sinks = append(sinks, click)
		}
	}

	if cfg.DMX.Enabled {
		light, err := dmxOutput(ctx, cfg, wg)
		if err != nil {
			log.Errorf("could not start dmx output: %v", err)
		} else {
			sinks = append(sinks, light)
		}
	}

	return sinks
}

func dmxOutput(ctx context.Context, cfg config.MetroConfig, wg *sync.WaitGroup) (*fixture.PulseLight, error) {
	log := logger.GetProjectLogger()

	log.Info("Initializing fixture manager...")
	fm, err := fixture.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	light, err := fixture.NewPulseLight(fm, cfg.DMX.Decay, cfg.DMX.HighColor, cfg.DMX.LowColor)
	if err != nil {
		return nil, err
	}

	// configure OLA for DMX output
	log.Info("Connecting to OLA...")
	client, err := gola.New(cfg.DMX.OLAAddress)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	wg.Add(1)
	go fixture.SendDMXWorker(ctx, clock.RealClock{}, client, cfg.DMX.Tick, light, fm, wg)
	return light, nil
}

func openLogFile() (*os.File, error) {
	path, err := homedir.Expand(logFile)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	f, err := tea.LogToFile(path, "metro")
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return f, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := gola.New(cfg.DMX.OLAAddress)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	defer client.Close()

	// dump out DMX on the universe
	x, err := client.GetDmx(flags.universe)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "universe %d: %v\n", flags.universe, x.Data)
	return nil
}
