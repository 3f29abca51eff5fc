package mcts

import "k8s.io/klog/v2"

// logSearchStart/logSearchStop/logChunk split verbosity so a library
// consumer gets total silence at the default level, -v=1 shows one
// line per search, and -v=2 shows per-chunk diagnostics.

func logSearchStart(params *Params) {
	if klog.V(1).Enabled() {
		klog.Infof("mcts: search starting, params=%s", params.String())
	}
}

func logSearchStop(reason StopReason, sims Value) {
	if klog.V(1).Enabled() {
		klog.Infof("mcts: search stopped reason=%s root_sims=%s", reason, sims)
	}
}

func logChunk(numRolls int, sims Value) {
	if klog.V(2).Enabled() {
		klog.Infof("mcts: chunk done num_rolls=%d root_sims=%s", numRolls, sims)
	}
}
