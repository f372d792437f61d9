// Package parser reads the parts of an xlsx package into the drawing model
// and writes them back by splicing changed values into the original bytes.
package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/tiendc/go-deepcopy"
)

// entry keeps the zip header fields a part is written back with.
type entry struct {
	method   uint16
	modified time.Time
}

// Package is an in-memory OPC package: every zip entry of an xlsx file, in
// archive order.
type Package struct {
	names   []string
	parts   map[string][]byte
	entries map[string]entry
}

// OpenPackage reads the package at path.
func OpenPackage(path string) (*Package, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readPackage(&r.Reader)
}

// ReadPackage reads a package from r.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return readPackage(zr)
}

func readPackage(r *zip.Reader) (*Package, error) {
	p := &Package{
		parts:   make(map[string][]byte, len(r.File)),
		entries: make(map[string]entry, len(r.File)),
	}
	for _, f := range r.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		if _, dup := p.parts[f.Name]; !dup {
			p.names = append(p.names, f.Name)
		}
		p.parts[f.Name] = data
		p.entries[f.Name] = entry{method: f.Method, modified: f.Modified}
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Names returns the part names in archive order.
func (p *Package) Names() []string {
	return slices.Clone(p.names)
}

// Part returns the bytes of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// SetPart replaces the named part, appending it if it is new.
func (p *Package) SetPart(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
		p.entries[name] = entry{method: zip.Deflate}
	}
	p.parts[name] = data
}

// Write writes the package as a zip archive.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.names {
		e := p.entries[name]
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   e.method,
			Modified: e.modified,
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// Clone returns a deep copy of the package.
func (p *Package) Clone() (*Package, error) {
	c := &Package{entries: maps.Clone(p.entries)}
	if err := deepcopy.Copy(&c.names, p.names); err != nil {
		return nil, err
	}
	if err := deepcopy.Copy(&c.parts, p.parts); err != nil {
		return nil, err
	}
	return c, nil
}
