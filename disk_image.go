// disk_image.go - disk image containers and CHS/LBA geometry (spec.md §6)
//
// The disk container itself is named only at its interface in spec.md
// §1 ("disk image containers: a blocking seek/read/write interface");
// this file supplies a concrete, file-backed implementation of that
// interface in the style of the donor engine's file_io.go (os.File,
// ReadAt/WriteAt, sector math kept separate from the byte-stream plumbing).
//
// License: GPLv3 or later

package main

import (
	"errors"
	"io"
	"os"
)

const bytesPerSector = 512

// diskGeometry is a CHS shape: cylinders, heads, sectors-per-track.
type diskGeometry struct {
	cylinders int
	heads     int
	sectors   int
}

// floppyGeometries lists the standard formats spec.md §6 derives from
// file size, largest first so the first size match wins.
var floppyGeometries = []struct {
	size     int64
	geometry diskGeometry
}{
	{1474560, diskGeometry{80, 2, 18}}, // 1.44 MB
	{1228800, diskGeometry{80, 2, 15}}, // 1.2 MB
	{737280, diskGeometry{80, 2, 9}},   // 720 KB
	{655360, diskGeometry{80, 2, 8}},   // 640 KB
	{368640, diskGeometry{40, 2, 9}},   // 360 KB
	{184320, diskGeometry{40, 1, 9}},   // 180 KB
	{163840, diskGeometry{40, 1, 8}},   // 160 KB
}

// geometryForFloppy looks up one of the seven standard floppy shapes by
// exact file size; ok is false for anything else (spec.md §6).
func geometryForFloppy(size int64) (diskGeometry, bool) {
	for _, g := range floppyGeometries {
		if g.size == size {
			return g.geometry, true
		}
	}
	return diskGeometry{}, false
}

// geometryForHardDisk derives a default CHS shape for an arbitrary image
// size: 63 sectors x 16 heads, cylinders from the remaining size
// (spec.md §6).
func geometryForHardDisk(size int64) diskGeometry {
	const sectors = 63
	const heads = 16
	cylBytes := int64(sectors) * int64(heads) * bytesPerSector
	cyl := int(size / cylBytes)
	if cyl < 1 {
		cyl = 1
	}
	return diskGeometry{cylinders: cyl, heads: heads, sectors: sectors}
}

// chsToLBA converts a 1-based sector CHS triple to a 0-based linear
// block number (spec.md §6): ((cyl*heads)+head)*sects + sect - 1.
func chsToLBA(geo diskGeometry, cyl, head, sect int) int64 {
	return int64((cyl*geo.heads+head)*geo.sectors + sect - 1)
}

// DiskImage is the blocking seek/read/write container spec.md names as
// an external collaborator interface; this is its file-backed adapter.
type DiskImage struct {
	file     *os.File
	geometry diskGeometry
	isHard   bool
	pos      int64
}

// OpenDiskImage opens path, derives its CHS geometry from file size
// (floppy table first, hard-disk default otherwise), and returns an
// inserted image ready for sector I/O.
func OpenDiskImage(path string, hardDisk bool) (*DiskImage, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	geo, ok := geometryForFloppy(info.Size())
	if !ok {
		geo = geometryForHardDisk(info.Size())
		hardDisk = true
	}
	return &DiskImage{file: f, geometry: geo, isHard: hardDisk}, nil
}

// Eject closes the backing file; subsequent operations fail.
func (d *DiskImage) Eject() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *DiskImage) Seek(byteOffset int64) error {
	if d.file == nil {
		return errors.New("disk: no media")
	}
	d.pos = byteOffset
	return nil
}

func (d *DiskImage) Tell() int64 { return d.pos }

func (d *DiskImage) Read(buf []byte) (int, error) {
	if d.file == nil {
		return 0, errors.New("disk: no media")
	}
	n, err := d.file.ReadAt(buf, d.pos)
	d.pos += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (d *DiskImage) Write(buf []byte) (int, error) {
	if d.file == nil {
		return 0, errors.New("disk: no media")
	}
	n, err := d.file.WriteAt(buf, d.pos)
	d.pos += int64(n)
	return n, err
}

// ReadSectorsCHS reads count sectors starting at the given 1-based CHS
// address into buf (len(buf) must be count*bytesPerSector).
func (d *DiskImage) ReadSectorsCHS(cyl, head, sect, count int, buf []byte) error {
	lba := chsToLBA(d.geometry, cyl, head, sect)
	if err := d.Seek(lba * bytesPerSector); err != nil {
		return err
	}
	_, err := d.Read(buf[:count*bytesPerSector])
	return err
}

// WriteSectorsCHS mirrors ReadSectorsCHS for writes.
func (d *DiskImage) WriteSectorsCHS(cyl, head, sect, count int, buf []byte) error {
	lba := chsToLBA(d.geometry, cyl, head, sect)
	if err := d.Seek(lba * bytesPerSector); err != nil {
		return err
	}
	_, err := d.Write(buf[:count*bytesPerSector])
	return err
}

// DiskController holds the drives visible to INT 13h/FDh: up to two
// floppies (00h, 01h) and up to two hard disks (80h, 81h).
type DiskController struct {
	floppy  [2]*DiskImage
	hard    [2]*DiskImage
}

func newDiskController() *DiskController { return &DiskController{} }

func (dc *DiskController) driveFor(drive byte) *DiskImage {
	switch {
	case drive < 0x02:
		return dc.floppy[drive]
	case drive >= 0x80 && drive < 0x82:
		return dc.hard[drive-0x80]
	default:
		return nil
	}
}

// FirstBootable returns the drive number and image of the first
// inserted floppy, falling back to the first inserted hard disk, for
// INT 19h's bootstrap loader (spec.md §4.11).
func (dc *DiskController) FirstBootable() (byte, *DiskImage, bool) {
	for i, d := range dc.floppy {
		if d != nil {
			return byte(i), d, true
		}
	}
	for i, d := range dc.hard {
		if d != nil {
			return byte(0x80 + i), d, true
		}
	}
	return 0, nil, false
}

func (dc *DiskController) InsertFloppy(slot int, img *DiskImage) { dc.floppy[slot] = img }
func (dc *DiskController) InsertHardDisk(slot int, img *DiskImage) { dc.hard[slot] = img }
