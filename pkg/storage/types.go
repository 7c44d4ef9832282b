package storage

import (
	"fmt"
	"path/filepath"
	"time"
)

// DiskStorage reads and writes the data files of one catalogue from a
// folder.
type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

// GetFileName returns the path of name and a temporary sibling path used
// for atomic writes.
func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := filepath.Join(ds.RootFolder, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixNano())
	return fileName, tmpFileName
}
