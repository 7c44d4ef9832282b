package storage

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

const gzipSuffix = ".gz"

var json = sonic.ConfigStd

func decodeJson(r io.Reader, data any) error {
	err := json.NewDecoder(r).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	if err = decodeJson(file, data); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}
	return nil
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("open gzip %s: %w", filename, err)
	}
	defer zipReader.Close()

	if err = decodeJson(zipReader, data); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}
	return nil
}

// Load reads filename as JSON, falling back to a gzipped filename.gz when
// the plain file is missing. Names ending in .gz are always gunzipped.
func (p *DiskStorage) Load(data any, filename string) error {
	if strings.HasSuffix(filename, gzipSuffix) {
		return p.LoadGzippedJson(data, filename)
	}
	err := p.LoadJson(data, filename)
	if errors.Is(err, fs.ErrNotExist) {
		if gzErr := p.LoadGzippedJson(data, filename+gzipSuffix); !errors.Is(gzErr, fs.ErrNotExist) {
			return gzErr
		}
	}
	return err
}

func (p *DiskStorage) SaveJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	err = json.NewEncoder(file).Encode(data)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	err = json.NewEncoder(zipWriter).Encode(data)
	if zipErr := zipWriter.Close(); err == nil {
		err = zipErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

// Remove deletes filename, a missing file is not an error.
func (p *DiskStorage) Remove(filename string) error {
	name, _ := p.GetFileName(filename)
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether filename or its gzipped variant is present.
func (p *DiskStorage) Exists(filename string) bool {
	name, _ := p.GetFileName(filename)
	if _, err := os.Stat(name); err == nil {
		return true
	}
	_, err := os.Stat(name + gzipSuffix)
	return err == nil
}
