// Package hardware is the root of the simulator. Simulator wires a
// PipelineController to a pair of caches and a shared main memory, and
// drives it cycle by cycle or to completion.
//
//	sim, err := hardware.InitSimulator(cfg)
//	sim.RunTillHalt()
//	sim.Finalize(os.Stdout, 0, length)
package hardware
