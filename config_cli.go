// config_cli.go - command-line configuration (spec.md §1: "the
// command-line parser" is an out-of-scope collaborator)
//
// Grounded on the donor engine's cmd/ie32to64/main.go stdlib-flag
// usage: this module never pulls in a third-party CLI framework despite
// the retrieval pack containing several (urfave/cli, spf13/cobra) —
// the donor doesn't either, and the CLI is explicitly out of scope, so
// there's no component in SPEC_FULL.md for one to serve.
//
// License: GPLv3 or later

package main

import (
	"flag"
	"fmt"
)

// Config is the parsed command line. Its Variant field selects the
// instruction-set/behavioral profile (spec.md §6
// "CPU variant selection (compile-time)" — exposed here as a run-time
// flag instead, since a compile-time build per variant would multiply
// binaries for no behavioral benefit the flag doesn't already give).
type Config struct {
	Variant  CPUVariant
	BIOSPath string
	BasicPath string
	VideoBIOSPath string
	Floppy0  string
	Floppy1  string
	HardDisk string
	Headless bool
	Scale    int
}

func ParseConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("pcxt", flag.ContinueOnError)

	variant := fs.String("cpu", "8086", "CPU variant: 8086, v20, 80186, 80286")
	bios := fs.String("bios", "", "path to the system BIOS image (required)")
	basic := fs.String("basic", "", "path to a ROM-BASIC image (optional)")
	vbios := fs.String("vbios", "", "path to a video BIOS image (optional)")
	fd0 := fs.String("fd0", "", "floppy image for drive A:")
	fd1 := fs.String("fd1", "", "floppy image for drive B:")
	hdd := fs.String("hdd", "", "hard disk image for drive C:")
	headless := fs.Bool("headless", false, "run without a display window")
	scale := fs.Int("scale", 2, "integer window scale factor")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v, err := parseVariant(*variant)
	if err != nil {
		return Config{}, err
	}
	if *bios == "" {
		return Config{}, fmt.Errorf("config: -bios is required")
	}

	return Config{
		Variant:       v,
		BIOSPath:      *bios,
		BasicPath:     *basic,
		VideoBIOSPath: *vbios,
		Floppy0:       *fd0,
		Floppy1:       *fd1,
		HardDisk:      *hdd,
		Headless:      *headless,
		Scale:         ClampScale(*scale),
	}, nil
}

func parseVariant(s string) (CPUVariant, error) {
	switch s {
	case "8086":
		return VariantI8086, nil
	case "v20", "V20":
		return VariantV20, nil
	case "80186":
		return VariantI80186, nil
	case "80286":
		return VariantI80286, nil
	default:
		return 0, fmt.Errorf("config: unknown CPU variant %q", s)
	}
}
