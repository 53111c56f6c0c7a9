package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/grimoire/internal/debug"
	gerrors "github.com/standardbeagle/grimoire/internal/errors"
)

// LoadKDL loads dir/.grimoire.kdl. It returns nil, nil when the file does not
// exist.
func LoadKDL(dir string) (*Config, error) {
	path := filepath.Join(dir, KDLFileName)
	if !fileExists(path) {
		return nil, nil
	}
	return loadKDLFile(path)
}

func loadKDLFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, gerrors.NewLoadError("read config", path, err)
	}

	cfg, err := parseKDL(string(content), filepath.Dir(path))
	if err != nil {
		return nil, gerrors.NewLoadError("parse config", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// parseKDL applies content on top of the defaults for root.
//
//	dataset {
//	    spells "data/spells/**/*.json"
//	    features "data/features/*.json" "homebrew/features.json"
//	    watch true
//	    debounce_ms 250
//	}
//	search {
//	    page_size 24
//	    sort "name-asc"
//	    fuzzy 0.2
//	    prefix true
//	    boost { name_pt 4; name_en 3; body_pt 2; body_en 2; classes 1; keywords 1 }
//	}
//	display { lang "en" }
func parseKDL(content, root string) (*Config, error) {
	cfg := Default(root)

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "dataset":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "spells":
					cfg.Dataset.Spells = collectStringArgs(cn)
				case "features":
					cfg.Dataset.Features = collectStringArgs(cn)
				case "watch":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Dataset.Watch = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Dataset.DebounceMs = v
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "page_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.PageSize = v
					}
				case "sort":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Sort = s
					}
				case "fuzzy":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Search.Fuzzy = v
					}
				case "prefix":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.Prefix = b
					}
				case "boost":
					for _, bn := range cn.Children {
						v, ok := firstFloatArg(bn)
						if !ok {
							continue
						}
						switch nodeName(bn) {
						case "name_pt":
							cfg.Search.Boost.NamePT = v
						case "name_en":
							cfg.Search.Boost.NameEN = v
						case "body_pt":
							cfg.Search.Boost.BodyPT = v
						case "body_en":
							cfg.Search.Boost.BodyEN = v
						case "classes":
							cfg.Search.Boost.Classes = v
						case "keywords":
							cfg.Search.Boost.Keywords = v
						}
					}
				}
			}
		case "display":
			for _, cn := range n.Children {
				assignSimpleString(cn, "lang", func(v string) { cfg.Display.Lang = v })
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		debug.Log("CONFIG", "invalid number for '%s' in KDL config: got %T\n", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

// collectStringArgs accepts both `spells "a" "b"` and the block form
// `spells { "a"; "b" }`.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
