package arandu

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleHCL = `
title      = "STAGING DEPLOYMENT"
serve_addr = "192.168.1.5:9091"

model "gemma-2-9b-Q4_K_M.gguf" {
  size = "5.4 GB"
}

model "qwen-2.5-7b-Q5_0.gguf" {
  size = "5.1 GB"
}

server {
  name   = "LLAMA.CPP"
  port   = 9090
  active = "gemma-2-9b-Q4_K_M"
}

proxy {
  port      = 9091
  endpoints = ["/v1/models", "/health"]
}

client "OpenWebUI" {
  badge = "O"
  port  = 3000
  note  = "/v1/"
}
`

func TestParseSystem(t *testing.T) {
	sys, err := ParseSystem([]byte(sampleHCL), "test.hcl")
	if err != nil {
		t.Fatalf("ParseSystem() error = %v", err)
	}

	if sys.Title != "STAGING DEPLOYMENT" {
		t.Errorf("Title = %q", sys.Title)
	}
	if sys.ServeAddr != "192.168.1.5:9091" {
		t.Errorf("ServeAddr = %q", sys.ServeAddr)
	}

	// Unset attributes keep their defaults.
	if sys.Subtitle != DefaultSystem().Subtitle {
		t.Errorf("Subtitle = %q, want default", sys.Subtitle)
	}
	if sys.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default", sys.Server.Host)
	}
	if sys.Proxy.Name != "OPENAI PROXY" {
		t.Errorf("Proxy.Name = %q, want default", sys.Proxy.Name)
	}

	// Declared blocks replace the default lists entirely.
	if len(sys.Models) != 2 {
		t.Fatalf("len(Models) = %d, want 2", len(sys.Models))
	}
	if sys.Models[0].Name != "gemma-2-9b-Q4_K_M.gguf" || sys.Models[0].Size != "5.4 GB" {
		t.Errorf("Models[0] = %+v", sys.Models[0])
	}
	if len(sys.Clients) != 1 {
		t.Fatalf("len(Clients) = %d, want 1", len(sys.Clients))
	}
	if sys.Clients[0].Name != "OpenWebUI" || sys.Clients[0].Badge != "O" || sys.Clients[0].Port != 3000 {
		t.Errorf("Clients[0] = %+v", sys.Clients[0])
	}

	if sys.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", sys.Server.Port)
	}
	if sys.Server.ActiveModel != "gemma-2-9b-Q4_K_M" {
		t.Errorf("Server.ActiveModel = %q", sys.Server.ActiveModel)
	}
	if sys.Proxy.Port != 9091 {
		t.Errorf("Proxy.Port = %d, want 9091", sys.Proxy.Port)
	}
	if len(sys.Proxy.Endpoints) != 2 || sys.Proxy.Endpoints[1] != "/health" {
		t.Errorf("Proxy.Endpoints = %v", sys.Proxy.Endpoints)
	}
}

func TestParseSystemEmptySource(t *testing.T) {
	sys, err := ParseSystem([]byte(""), "empty.hcl")
	if err != nil {
		t.Fatalf("ParseSystem() error = %v", err)
	}
	// An empty file is the compiled-in default.
	if sys.Title != DefaultSystem().Title {
		t.Errorf("Title = %q, want default", sys.Title)
	}
	if len(sys.Models) != len(DefaultSystem().Models) {
		t.Errorf("len(Models) = %d, want default", len(sys.Models))
	}
}

func TestParseSystemSyntaxError(t *testing.T) {
	if _, err := ParseSystem([]byte("server {"), "broken.hcl"); err == nil {
		t.Error("ParseSystem() should fail on unterminated block")
	}
}

func TestLoadSystemFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.hcl")
		if err := os.WriteFile(path, []byte(sampleHCL), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		sys, err := LoadSystemFile(path)
		if err != nil {
			t.Fatalf("LoadSystemFile() error = %v", err)
		}
		if sys.Title != "STAGING DEPLOYMENT" {
			t.Errorf("Title = %q", sys.Title)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSystemFile("/nonexistent/system.hcl"); err == nil {
			t.Error("LoadSystemFile() should fail for a missing file")
		}
	})
}
