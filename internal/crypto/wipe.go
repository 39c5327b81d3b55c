package crypto

// Wipe zeroes a byte slice holding key material. The source environment has
// no deterministic destructors, so every transient secret (entry keys, grant
// keys, signatures used as IKM) is wiped explicitly at the end of the
// shortest possible scope. Session-lifetime secrets live in memguard buffers
// owned by the orchestrator instead.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
