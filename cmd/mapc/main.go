// mapc is a CLI utility for wolfcast level files: it compiles the YAML
// authoring format into WMAP, prints map information and renders a plan
// view.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wolfcast/internal/assets"
	"github.com/Faultbox/wolfcast/internal/engine/debug"
	"github.com/Faultbox/wolfcast/internal/engine/raycast"
	"github.com/Faultbox/wolfcast/internal/engine/sprite"
	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/world"
	"github.com/Faultbox/wolfcast/pkg/formats"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "compile", "c":
		err = cmdCompile(args)
	case "decompile", "d":
		err = cmdDecompile(args)
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "render":
		err = cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mapc - wolfcast map utility

Usage:
  mapc <command> [options]

Commands:
  compile <map.yaml> [out.wmap]       Compile a YAML map to WMAP
  decompile <map.wmap> [out.yaml]     Convert a WMAP file back to YAML
  info <map>                          Show map information
  render [-cell N] [-rays] <map> <out.png>
                                      Render a plan view

A <map> is a file path or the name of a built-in map.

Examples:
  mapc compile e1m1.yaml
  mapc info e1m1
  mapc render -cell 16 -rays e1m1 e1m1.png`)
}

// loadMap reads a map file of either encoding, or a built-in map by name.
func loadMap(arg string) (*formats.Map, error) {
	return assets.NewManager().LoadMap(arg)
}

// replaceExt swaps the extension of path.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func cmdCompile(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mapc compile <map.yaml> [out.wmap]")
	}
	m, err := formats.ParseMapYAMLFile(args[0])
	if err != nil {
		return err
	}
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", args[0], err)
	}

	out := replaceExt(args[0], ".wmap")
	if len(args) > 1 {
		out = args[1]
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Compiled: %s (%d bytes)\n", out, len(data))
	return nil
}

func cmdDecompile(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mapc decompile <map.wmap> [out.yaml]")
	}
	m, err := formats.ParseMapFile(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	out := replaceExt(args[0], ".yaml")
	if len(args) > 1 {
		out = args[1]
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Decompiled: %s\n", out)
	return nil
}

func cmdInfo(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mapc info <map>")
	}
	m, err := loadMap(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Map:     %s (v%s)\n", m.Name, m.Version)
	fmt.Fprintf(w, "Size:    %dx%d\n", m.Width, m.Height)
	fmt.Fprintf(w, "Spawn:   (%.2f, %.2f) facing %.2f rad\n", m.Spawn.X, m.Spawn.Y, m.Spawn.Angle)
	fmt.Fprintf(w, "Doors:   %d\n", len(m.Doors))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cells by code:")

	counts := m.CountByCode()
	codes := make([]int, 0, len(counts))
	for c := range counts {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	for _, c := range codes {
		fmt.Fprintf(w, "  %d  %-6s %d\n", c, cellKind(uint8(c)), counts[uint8(c)])
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Things:  %d\n", len(m.Things))
	for _, th := range m.Things {
		fmt.Fprintf(w, "  %-10s %-12s (%.2f, %.2f)\n", th.Kind, th.Name, th.X, th.Y)
	}
	return nil
}

func cellKind(code uint8) string {
	switch code {
	case formats.CellEmpty:
		return "empty"
	case formats.CellDoor:
		return "door"
	default:
		return "wall"
	}
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	cell := fs.Int("cell", 16, "Pixels per grid cell")
	rays := fs.Bool("rays", false, "Draw the ray sweep from the spawn point")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: mapc render [-cell N] [-rays] <map> <out.png>")
	}

	m, err := loadMap(fs.Arg(0))
	if err != nil {
		return err
	}
	lvl, err := world.NewLevel(m, world.DefaultDoorConfig())
	if err != nil {
		return err
	}

	pose := view.Pose{Pos: lvl.SpawnPos, Angle: lvl.SpawnAngle}
	td := debug.TopDown{Grid: lvl.Grid, Doors: lvl.Doors, Pose: &pose}
	for _, th := range lvl.Things {
		td.Sprites = append(td.Sprites, sprite.New(wmath.Vec2{X: th.X, Y: th.Y}, th.Name))
	}
	if *rays {
		td.Hits = raycast.New(view.Default(), lvl.Grid, lvl.Doors).Cast(pose)
		td.RayStride = 8
	}

	f, err := os.Create(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("creating %s: %w", fs.Arg(1), err)
	}
	defer f.Close()
	if err := png.Encode(f, td.Image(*cell)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	fmt.Printf("Rendered: %s\n", fs.Arg(1))
	return nil
}
