//go:build windows

package mem

func lockMemoryPlatform() (ProtectionLevel, error) {
	// VirtualLock exists on Windows but has per-process quota limits;
	// memguard's enclave encryption still protects the key material
	return ProtectionPartial, nil
}

func unlockMemoryPlatform() error {
	return nil
}
