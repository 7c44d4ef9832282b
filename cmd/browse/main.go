package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/matst80/skill-finder/pkg/controller"
	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/storage"
)

var dataDir = flag.String("data", "data", "folder with the skill data files")
var query = flag.String("query", "", "filter query or shared link to start from")
var page = flag.String("page", "https://skills.local/", "page the shared link points to")

// splitLink accepts either a bare query or a full link. A link also
// replaces the page used for sharing.
func splitLink(s string, fallback *url.URL) (string, *url.URL) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			return u.RawQuery, u
		}
	}
	return strings.TrimPrefix(s, "?"), fallback
}

func main() {
	_ = godotenv.Load()
	flag.Parse()
	if dir := os.Getenv("DATA_DIR"); dir != "" && *dataDir == "data" {
		*dataDir = dir
	}

	base, err := url.Parse(*page)
	if err != nil {
		log.Fatalf("Invalid page url %q: %v", *page, err)
	}
	rawQuery, base := splitLink(*query, base)

	c, err := skills.LoadCatalogue(storage.NewDiskStorage(*dataDir))
	if err != nil {
		log.Fatalf("Failed to load skills from %s: %v", *dataDir, err)
	}

	var p *tea.Program
	m := newModel(c, rawQuery, base, controller.WithOnUpdate(func(controller.Update[skills.Skill]) {
		// Toggle commits inside Update, Send would block there
		go p.Send(refreshMsg{})
	}))
	p = tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		log.Fatalf("Browser failed: %v", err)
	}
	if fm, ok := final.(model); ok {
		fmt.Println(fm.ShareLink())
	}
}
