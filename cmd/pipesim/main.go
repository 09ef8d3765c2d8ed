// Command pipesim is the batch driver for the pipeline simulator: load a
// flat binary image of MIPS32 instruction words, run it to completion (or
// for a fixed number of cycles), and report the final architectural state.
//
// This is the ambient "external collaborator" CLI the core design calls out
// as out of scope for the simulator itself - a small cobra command tree in
// the idiom of the pack's own focused CPU-tooling CLI, rather than the
// teacher's hand-rolled modalflag dispatcher built for a GUI launcher.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/archtrace/mipscore/config"
	"github.com/archtrace/mipscore/hardware"
	"github.com/archtrace/mipscore/hardware/cpu/execution"
	"github.com/archtrace/mipscore/hardware/memory/store"
	"github.com/archtrace/mipscore/logger"
	"github.com/archtrace/mipscore/stats"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pipesim",
		Short: "Cycle-accurate MIPS32 five-stage pipeline simulator",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file (icache/dcache/run geometry)")

	var cycles uint64
	var statsAddr string
	var dumpStart uint32
	var dumpLength uint32

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a program image and execute it to halt, or for a fixed number of cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("stats-addr") {
				cfg.Run.StatsAddr = statsAddr
			}
			if cmd.Flags().Changed("dump-start") {
				cfg.Run.DumpStart = dumpStart
			}
			if cmd.Flags().Changed("dump-length") {
				cfg.Run.DumpLength = dumpLength
			}
			if cmd.Flags().Changed("cycles") {
				cfg.Run.MaxCycles = cycles
			}

			return runImage(cfg, args[0], cmd.OutOrStdout())
		},
	}
	runCmd.Flags().Uint64Var(&cycles, "cycles", 0, "Run for at most N cycles, stopping early at halt (0 = to halt)")
	runCmd.Flags().StringVar(&statsAddr, "stats-addr", "", "Serve a live pipeline/cache dashboard at this address (e.g. :8080); empty disables it")
	runCmd.Flags().Uint32Var(&dumpStart, "dump-start", 0, "First address of the memory window printed at the end")
	runCmd.Flags().Uint32Var(&dumpLength, "dump-length", 0, "Length of the memory window printed at the end")

	dumpCmd := &cobra.Command{
		Use:   "dump [image]",
		Short: "Load a program image, run it to halt, and print final register/memory state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Run.StatsAddr = ""
			return runImage(cfg, args[0], cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(runCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runImage constructs a Simulator from cfg, loads the program image at
// imagePath, runs it to halt (or for cfg.Run.MaxCycles cycles when nonzero),
// and writes the final state to w via Simulator.Finalize.
func runImage(cfg config.Config, imagePath string, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	sim, err := hardware.InitSimulator(cfg.HardwareConfig())
	if err != nil {
		return err
	}

	loader, err := store.NewLoaderFromFilename(imagePath)
	if err != nil {
		return err
	}
	if err := loader.Load(sim.Memory); err != nil {
		return err
	}

	var dash *stats.Dashboard
	if cfg.Run.StatsAddr != "" {
		dash = stats.New(0)
		if err := dash.Start(cfg.Run.StatsAddr); err != nil {
			return err
		}
		defer dash.Stop()
		fmt.Fprintf(w, "dashboard listening on %s\n", dash.Addr())
	}

	prevID := uint32(0)
	haveHistory := false
	var stalls uint64

	observe := func(st execution.PipelineState) {
		if haveHistory && st.ID == prevID && st.ID != 0 {
			stalls++
		}
		prevID = st.ID
		haveHistory = true
		if dash != nil {
			dash.Record(stats.FromStats(st.Cycle, sim.Stats(), stalls))
		}
	}

	if cfg.Run.MaxCycles == 0 {
		for {
			halted, err := sim.RunCycle()
			if err != nil {
				return err
			}
			observe(sim.LastPipeState())
			if halted {
				break
			}
		}
	} else {
		for i := uint64(0); i < cfg.Run.MaxCycles; i++ {
			halted, err := sim.RunCycle()
			if err != nil {
				return err
			}
			observe(sim.LastPipeState())
			if halted {
				break
			}
		}
	}

	logger.Logf("pipesim", "final pipeline state: %s", sim.LastPipeState())

	length := cfg.Run.DumpLength
	if length == 0 {
		length = 256
	}
	return sim.Finalize(w, cfg.Run.DumpStart, length)
}
