// Package arandu turns a description of the Arandu deployment (local model
// server plus OpenAI-compatible proxy and its clients) into a renderable
// scene. The description is data: it ships with compiled-in defaults and can
// be replaced by an HCL file on disk or fetched from a URL.
package arandu

import (
	"strconv"
	"strings"
)

// Model is one GGUF model file in local storage.
type Model struct {
	Name string
	Size string // human readable, e.g. "8.5 GB"
}

// Server describes the llama.cpp inference server.
type Server struct {
	Name        string
	Host        string
	Port        int
	ActiveModel string
}

// Proxy describes the OpenAI-compatible HTTP proxy in front of the server.
type Proxy struct {
	Name      string
	Host      string
	Port      int
	Endpoints []string
}

// Client is one external consumer of the proxy API.
type Client struct {
	Name  string
	Badge string // single glyph shown in the client icon
	Port  int    // 0 when unknown
	Note  string // short protocol note, e.g. "/v1/"
}

// System is the full deployment description a diagram is built from.
type System struct {
	Title     string
	Subtitle  string
	Footer    string
	ServeAddr string // LAN address shown in the network widget

	Models  []Model
	Server  Server
	Proxy   Proxy
	Clients []Client
}

// DefaultSystem returns the compiled-in Arandu deployment. Building a
// diagram with no input files uses exactly this description.
func DefaultSystem() *System {
	return &System{
		Title:     "ARANDU ARCHITECTURE",
		Subtitle:  "Local AI Infrastructure",
		Footer:    "OpenAI-Compatible API  •  Concurrent Client Support  •  Sequential Model Processing",
		ServeAddr: "10.0.0.47:8081",
		Models: []Model{
			{Name: "llama-3.1-8b-Q4_K_M.gguf", Size: "8.5 GB"},
			{Name: "mistral-7b-v0.3-Q5_K_M.gguf", Size: "7.2 GB"},
			{Name: "phi-3-mini-Q4_0.gguf", Size: "2.1 GB"},
		},
		Server: Server{
			Name:        "LLAMA.CPP SERVER",
			Host:        "127.0.0.1",
			Port:        8080,
			ActiveModel: "llama-3.1-8b-Q4_K_M",
		},
		Proxy: Proxy{
			Name:      "OPENAI PROXY",
			Host:      "0.0.0.0",
			Port:      8081,
			Endpoints: []string{"/v1/models", "/v1/chat/completions", "/health"},
		},
		Clients: []Client{
			{Name: "Witsy", Badge: "W", Port: 8091, Note: "/v1/"},
			{Name: "Cherry AI", Badge: "C", Port: 8091, Note: "No /v1"},
			{Name: "More", Badge: "+", Note: "Clients"},
		},
	}
}

// StorageSummary describes the model storage in one line, e.g.
// "3 models • 17.8 GB total". The total is omitted when any size
// string cannot be read as gigabytes.
func (s *System) StorageSummary() string {
	count := len(s.Models)
	noun := "models"
	if count == 1 {
		noun = "model"
	}

	total := 0.0
	known := true
	for _, m := range s.Models {
		gb, ok := parseGigabytes(m.Size)
		if !ok {
			known = false
			break
		}
		total += gb
	}

	summary := strconv.Itoa(count) + " " + noun
	if known && count > 0 {
		summary += " • " + strconv.FormatFloat(total, 'f', 1, 64) + " GB total"
	}
	return summary
}

func parseGigabytes(size string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(size), "GB"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
