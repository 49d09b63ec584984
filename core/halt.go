package core

// Halt is the fail-stop path for initialization errors. Motion cannot be
// trusted without a verified timer and pin setup, so there is no recovery:
// interrupts are disabled and the firmware stops here.
func Halt(reason string) {
	DebugPrintln("[HALT] " + reason)
	RecordEvent(EvtHalt, 0, 0)
	DumpEventRing()
	halt(reason)
}

// MustInit halts when err is non-nil
func MustInit(what string, err error) {
	if err != nil {
		Halt(what + ": " + err.Error())
	}
}
