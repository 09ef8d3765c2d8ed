package cpu

// forward returns newValue in place of value when src is a nonzero register
// that matches the producing latch's destination and the latch carries a
// present pending value; otherwise it returns value unchanged. Forwarding
// mutates the input snapshot held in a latch, never the register file
// itself - see applyOperandForwarding and applyStoreForwarding below.
func forward(value uint32, src uint8, from stageLatch) uint32 {
	if src != 0 && from.Dest == src && from.Pending.Present {
		return from.Pending.Value
	}
	return value
}

// applyOperandForwarding resolves rs/rt for the instruction currently in
// id/ex against both later latches. MEM/WB is applied first and EX/MEM is
// applied second so that, when both match, the newer producer (EX/MEM)
// wins - the ordering named by spec.md §4.3 and confirmed against the
// original simulator's own forwarding precedence.
func applyOperandForwarding(idex *stageLatch, exmem, memwb stageLatch) {
	rs := idex.Inst.SourceRS()
	rt := idex.Inst.SourceRT()

	idex.Inst.RSValue = forward(idex.Inst.RSValue, rs, memwb)
	idex.Inst.RTValue = forward(idex.Inst.RTValue, rt, memwb)

	idex.Inst.RSValue = forward(idex.Inst.RSValue, rs, exmem)
	idex.Inst.RTValue = forward(idex.Inst.RTValue, rt, exmem)
}

// applyStoreForwarding resolves the rt operand of a store sitting in
// exmem against memwb - the one forwarding path the memory stage itself
// needs, restricted to rt (the value being stored).
func applyStoreForwarding(exmem *stageLatch, memwb stageLatch) {
	rt := exmem.Inst.SourceRT()
	exmem.Inst.RTValue = forward(exmem.Inst.RTValue, rt, memwb)
}

// branchOperandUnavailable implements the decode-stage "branch/JR operand
// unavailable" stall rule: a branch or jr whose compared source(s) match the
// nonzero destination of id/ex, or the nonzero destination of exmem when
// exmem is a load, must stall rather than read a stale snapshot. A non-load
// producer in exmem is not a stall: its pending value is forwarded into
// decode (see cpu.go), and a MEM/WB producer is visible through the
// register file because write-back runs before decode in the same cycle.
func branchOperandUnavailable(sources []uint8, idex, exmem stageLatch) bool {
	for _, src := range sources {
		if src == 0 {
			continue
		}
		if idex.Dest != 0 && idex.Dest == src {
			return true
		}
		if exmem.Dest != 0 && exmem.Dest == src && exmem.Inst.IsMemRead() {
			return true
		}
	}
	return false
}

// loadUseHazard implements the decode-stage load-use stall rule: id/ex is a
// load whose destination (rt) matches a nonzero source register of the
// instruction being decoded.
func loadUseHazard(sources []uint8, idex stageLatch) bool {
	if !idex.Inst.IsMemRead() {
		return false
	}
	for _, src := range sources {
		if src != 0 && src == idex.Dest {
			return true
		}
	}
	return false
}
