package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/oriumgames/pile/sponge"
	"github.com/oriumgames/pile/sponge/format"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("schem: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "info":
		err = infoCmd(os.Stdout, os.Args[2:])
	case "convert":
		err = convertCmd(os.Args[2:])
	case "palette":
		err = paletteCmd(os.Stdout, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schem: inspect and convert Sponge schematics\n\nUsage:\n  schem info [-o text|json|yaml] file.schem\n  schem convert [-version 2|3] in.schem out.schem\n  schem palette [-biomes] file.schem")
}

// report is the summary printed by the info command.
type report struct {
	File          string            `json:"file" yaml:"file"`
	Width         int               `json:"width" yaml:"width"`
	Height        int               `json:"height" yaml:"height"`
	Length        int               `json:"length" yaml:"length"`
	Offset        [3]int            `json:"offset" yaml:"offset"`
	DataVersion   int               `json:"dataVersion" yaml:"dataVersion"`
	Minecraft     string            `json:"minecraft,omitempty" yaml:"minecraft,omitempty"`
	Name          string            `json:"name" yaml:"name"`
	Author        string            `json:"author" yaml:"author"`
	Date          string            `json:"date" yaml:"date"`
	RequiredMods  []string          `json:"requiredMods,omitempty" yaml:"requiredMods,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Blocks        int               `json:"blockPalette" yaml:"blockPalette"`
	Biomes        int               `json:"biomePalette" yaml:"biomePalette"`
	BlockEntities int               `json:"blockEntities" yaml:"blockEntities"`
	Entities      []entityReport    `json:"entities,omitempty" yaml:"entities,omitempty"`
}

type entityReport struct {
	ID  string     `json:"id" yaml:"id"`
	Pos [3]float64 `json:"pos" yaml:"pos"`
}

func newReport(path string, s *format.Schematic) report {
	w, h, l := s.Dimensions()
	x, y, z := s.Offset()
	r := report{
		File:          path,
		Width:         w,
		Height:        h,
		Length:        l,
		Offset:        [3]int{x, y, z},
		DataVersion:   s.DataVersion,
		Minecraft:     s.Version(),
		Name:          s.Name,
		Author:        s.Author,
		Date:          s.Date.UTC().Format("2006-01-02T15:04:05Z"),
		RequiredMods:  s.RequiredMods,
		Metadata:      s.MetadataCopy(),
		Blocks:        len(s.BlockPalette().Values()),
		Biomes:        len(s.BiomePalette().Values()),
		BlockEntities: len(s.BlockEntities()),
	}
	for _, e := range s.Entities() {
		pos, _ := format.EntityPosition(e)
		r.Entities = append(r.Entities, entityReport{ID: format.EntityID(e), Pos: pos})
	}
	return r
}

func infoCmd(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	output := fs.String("o", "text", "output format (text|json|yaml)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	s, err := sponge.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	r := newReport(fs.Arg(0), s)

	switch *output {
	case "json":
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(b)
		return err
	case "text":
		return writeText(out, r)
	default:
		return fmt.Errorf("unknown output format %q", *output)
	}
}

func writeText(out io.Writer, r report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.File)
	fmt.Fprintf(&b, "  size:           %dx%dx%d\n", r.Width, r.Height, r.Length)
	fmt.Fprintf(&b, "  offset:         %d %d %d\n", r.Offset[0], r.Offset[1], r.Offset[2])
	fmt.Fprintf(&b, "  data version:   %d (%s)\n", r.DataVersion, r.Minecraft)
	fmt.Fprintf(&b, "  name:           %s\n", r.Name)
	fmt.Fprintf(&b, "  author:         %s\n", r.Author)
	fmt.Fprintf(&b, "  date:           %s\n", r.Date)
	if len(r.RequiredMods) > 0 {
		fmt.Fprintf(&b, "  required mods:  %s\n", strings.Join(r.RequiredMods, ", "))
	}
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, r.Metadata[k])
	}
	fmt.Fprintf(&b, "  block palette:  %d\n", r.Blocks)
	fmt.Fprintf(&b, "  biome palette:  %d\n", r.Biomes)
	fmt.Fprintf(&b, "  block entities: %d\n", r.BlockEntities)
	fmt.Fprintf(&b, "  entities:       %d\n", len(r.Entities))
	for _, e := range r.Entities {
		fmt.Fprintf(&b, "    %s at %.2f %.2f %.2f\n", e.ID, e.Pos[0], e.Pos[1], e.Pos[2])
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func convertCmd(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	version := fs.Int("version", int(format.Latest), "schema version to write")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}

	s, err := sponge.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := sponge.Save(fs.Arg(1), s, format.Version(*version)); err != nil {
		return err
	}
	log.Printf("wrote %s as version %d", fs.Arg(1), *version)
	return nil
}

func paletteCmd(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	biomes := fs.Bool("biomes", false, "list the biome palette instead of the block palette")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	s, err := sponge.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	p := s.BlockPalette()
	if *biomes {
		p = s.BiomePalette()
	}
	entries := p.Export()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return entries[keys[i]] < entries[keys[j]] })
	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "%5d  %s\n", entries[k], k); err != nil {
			return err
		}
	}
	return nil
}
