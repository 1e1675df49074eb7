package metrics

import (
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
)

// SysHealth is a snapshot of process and data directory usage.
type SysHealth struct {
	AllocBytes uint64
	SysBytes   uint64
	NumGC      uint32
	Goroutines int
	DataDir    string
	DataBytes  int64
}

// GetSysHealth collects process memory statistics and the size of the files
// under dataDir. An unreadable directory counts as empty.
func GetSysHealth(dataDir string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocBytes: m.Alloc,
		SysBytes:   m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		DataDir:    dataDir,
		DataBytes:  dirSize(dataDir),
	}
}

// DataSize formats DataBytes for display.
func (h SysHealth) DataSize() string {
	return humanize.IBytes(uint64(h.DataBytes))
}

// Memory formats the allocated and reserved heap for display.
func (h SysHealth) Memory() string {
	return humanize.IBytes(h.AllocBytes) + " allocated, " + humanize.IBytes(h.SysBytes) + " reserved"
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		return nil
	})
	return size
}
