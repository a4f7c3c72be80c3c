package persistence

import (
	"calltracker/internal/models"
	"calltracker/internal/persistence/interfaces"
	"calltracker/internal/providers"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Snapshotter is implemented by stores that live in process and need to be
// written to disk.
type Snapshotter interface {
	Snapshot() *models.Snapshot
	PutSnapshot(snap *models.Snapshot)
}

type FileManager struct {
	source     Snapshotter
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, source Snapshotter, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		source:     source,
		logger:     logger,
	}
}

// SaveToFile writes the snapshot through a temp file and a rename so a crash
// never leaves a truncated image behind.
func (f *FileManager) SaveToFile(fileName string) (*models.Snapshot, error) {
	snap := f.source.Snapshot()

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return nil, err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return nil, err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return nil, err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return nil, err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return nil, err
	}

	return snap, os.Rename(tmpFile, fileName)
}

// CanSnapshot is false when the backing store persists on its own.
func (f *FileManager) CanSnapshot() bool {
	return f.source != nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the snapshot at fileName. A missing file is not an
// error; the store simply starts empty. It reports whether anything was
// loaded.
func (f *FileManager) LoadFromFile(fileName string) (bool, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return false, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		return false, err
	}
	if snap.Version > models.SnapshotVersion {
		return false, fmt.Errorf("snapshot version %d is newer than supported %d", snap.Version, models.SnapshotVersion)
	}
	if snap.Version == 0 {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s has no version, assuming %d", fileName, models.SnapshotVersion)
	}

	f.source.PutSnapshot(&snap)
	return true, nil
}

// ReadRoster reads a JSON array of voter records, transparently
// decompressing zstd input.
func (f *FileManager) ReadRoster(fileName string) ([]models.VoterRecord, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	if IsZstdFrame(data) {
		data, err = f.compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress roster %s: %w", fileName, err)
		}
	}

	var voters []models.VoterRecord
	if err := json.Unmarshal(data, &voters); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", fileName, err)
	}
	return voters, nil
}
