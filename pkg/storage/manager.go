package storage

import (
	"fmt"
	"sync"

	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
// The local disk is always available; the S3 disk boots only when a bucket
// is configured.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDisk()
	disks["local"] = NewLocalDisk("")

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: configured disk unavailable, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// RegisterDisk plugs in a custom Disk (tests register temp-dir disks).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
	managerMu.Unlock()
}
