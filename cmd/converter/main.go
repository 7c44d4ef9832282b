package main

import (
	"flag"
	"log"
	"os"

	"github.com/matst80/skill-finder/pkg/messaging"
	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/storage"
)

var from = flag.String("from", "raw", "folder with the exported json files")
var to = flag.String("to", "data", "folder the gzipped files are written to")
var notify = flag.Bool("notify", true, "publish a reload notice when RABBIT_URL is set")

// convert validates the export by building a catalogue from it, then stores
// each file gzipped. A plain copy left in dst is removed, Load would prefer
// it over the new file. Nothing is written when the export does not load.
func convert(src, dst *storage.DiskStorage) ([]string, error) {
	c, err := skills.LoadCatalogue(src)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d skills from %s", c.Len(), src.RootFolder)

	written := []string{}
	for _, name := range skills.DataFiles {
		if !src.Exists(name) {
			continue
		}
		var data any
		if err := src.Load(&data, name); err != nil {
			return written, err
		}
		if err := dst.SaveGzippedJson(data, name+".gz"); err != nil {
			return written, err
		}
		if err := dst.Remove(name); err != nil {
			return written, err
		}
		written = append(written, name+".gz")
	}
	return written, nil
}

func main() {
	flag.Parse()
	written, err := convert(storage.NewDiskStorage(*from), storage.NewDiskStorage(*to))
	if err != nil {
		log.Fatalf("Could not convert skills: %v", err)
	}
	log.Printf("Wrote %v", written)

	url := os.Getenv("RABBIT_URL")
	if !*notify || url == "" {
		return
	}
	cfg := messaging.RabbitConfig{Url: url, Prefix: os.Getenv("RABBIT_PREFIX")}
	if cfg.Prefix == "" {
		cfg.Prefix = "skills"
	}
	conn, err := messaging.Connect(cfg, messaging.SkillsChanged)
	if err != nil {
		log.Fatalf("Could not connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	err = messaging.SendChange(conn, cfg.Prefix, messaging.SkillsChanged, messaging.ReloadNotice{
		Reason: "converter",
		Files:  written,
	})
	if err != nil {
		log.Fatalf("Could not send reload notice: %v", err)
	}
	log.Printf("Sent reload notice")
}
