package arandu

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/arandu/archdiagram/internal/validation"
)

// systemSchema is the top-level shape of a system description file:
// scalar attributes plus model/server/proxy/client blocks. Unknown
// attributes and blocks are ignored.
var systemSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
		{Name: "subtitle"},
		{Name: "footer"},
		{Name: "serve_addr"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "model", LabelNames: []string{"name"}},
		{Type: "server"},
		{Type: "proxy"},
		{Type: "client", LabelNames: []string{"name"}},
	},
}

// LoadSystemFile reads a system description from an HCL file. Values the
// file does not set keep their compiled-in defaults.
func LoadSystemFile(path string) (*System, error) {
	if err := validation.ValidateInputPath(path, false); err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors in %s: %s", path, diags.Error())
	}
	return decodeSystem(file.Body)
}

// ParseSystem decodes a system description from raw HCL source. The
// filename is only used in diagnostics.
func ParseSystem(src []byte, filename string) (*System, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors in %s: %s", filename, diags.Error())
	}
	return decodeSystem(file.Body)
}

func decodeSystem(body hcl.Body) (*System, error) {
	content, _, diags := body.PartialContent(systemSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse body: %s", diags.Error())
	}

	sys := DefaultSystem()
	if v, ok := stringAttr(content.Attributes, "title"); ok {
		sys.Title = v
	}
	if v, ok := stringAttr(content.Attributes, "subtitle"); ok {
		sys.Subtitle = v
	}
	if v, ok := stringAttr(content.Attributes, "footer"); ok {
		sys.Footer = v
	}
	if v, ok := stringAttr(content.Attributes, "serve_addr"); ok {
		sys.ServeAddr = v
	}

	var models []Model
	var clients []Client
	for _, block := range content.Blocks {
		attrs, err := blockAttributes(block)
		if err != nil {
			return nil, err
		}
		switch block.Type {
		case "model":
			models = append(models, Model{
				Name: block.Labels[0],
				Size: attrs.str("size", ""),
			})
		case "server":
			sys.Server = Server{
				Name:        attrs.str("name", sys.Server.Name),
				Host:        attrs.str("host", sys.Server.Host),
				Port:        attrs.num("port", sys.Server.Port),
				ActiveModel: attrs.str("active", sys.Server.ActiveModel),
			}
		case "proxy":
			sys.Proxy = Proxy{
				Name:      attrs.str("name", sys.Proxy.Name),
				Host:      attrs.str("host", sys.Proxy.Host),
				Port:      attrs.num("port", sys.Proxy.Port),
				Endpoints: attrs.strList("endpoints", sys.Proxy.Endpoints),
			}
		case "client":
			clients = append(clients, Client{
				Name:  block.Labels[0],
				Badge: attrs.str("badge", ""),
				Port:  attrs.num("port", 0),
				Note:  attrs.str("note", ""),
			})
		}
	}

	// Declaring any model or client block replaces the whole default list.
	if models != nil {
		sys.Models = models
	}
	if clients != nil {
		sys.Clients = clients
	}
	return sys, nil
}

// attrValues holds a block's evaluated attributes.
type attrValues map[string]cty.Value

func blockAttributes(block *hcl.Block) (attrValues, error) {
	hclAttrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s block attributes: %s", block.Type, diags.Error())
	}

	attrs := make(attrValues, len(hclAttrs))
	for name, attr := range hclAttrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			// Skip attributes that can't be evaluated without context
			continue
		}
		attrs[name] = val
	}
	return attrs, nil
}

func (a attrValues) str(name, fallback string) string {
	if v, ok := a[name]; ok && v.Type() == cty.String {
		return v.AsString()
	}
	return fallback
}

func (a attrValues) num(name string, fallback int) int {
	if v, ok := a[name]; ok && v.Type() == cty.Number {
		f, _ := v.AsBigFloat().Float64()
		return int(f)
	}
	return fallback
}

func (a attrValues) strList(name string, fallback []string) []string {
	v, ok := a[name]
	if !ok || !(v.Type().IsListType() || v.Type().IsTupleType()) {
		return fallback
	}
	var list []string
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		if elem.Type() == cty.String {
			list = append(list, elem.AsString())
		}
	}
	return list
}

func stringAttr(attrs hcl.Attributes, name string) (string, bool) {
	attr, ok := attrs[name]
	if !ok {
		return "", false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}
