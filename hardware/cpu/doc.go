// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package cpu implements the five-stage in-order MIPS32 pipeline:
// PipelineController drives instruction fetch, decode, execute, memory and
// write-back against the four inter-stage latches defined in latches.go, with
// hazard detection and operand forwarding in forwarding.go.
//
// A PipelineController is constructed against a pair of caches, one serving
// instruction fetch and one serving data access (see the cache package):
//
//	p := cpu.New(icache, dcache)
//	for {
//		halted, err := p.Cycle()
//		if err != nil {
//			// ...
//		}
//		if halted {
//			break
//		}
//	}
//
// Cycle advances the pipeline by exactly one clock cycle and reports whether
// the halt sentinel has retired from write-back. The register file and
// program counter are exported directly (Regs, PC) for callers that need to
// inspect or seed architectural state; the four latches and the stall/halt
// bookkeeping are private to this package.
package cpu
