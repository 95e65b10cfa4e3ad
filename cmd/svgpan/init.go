package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diagramlab/svgpan/cmd/svgpan/internal/config"
	"github.com/diagramlab/svgpan/cmd/svgpan/internal/ui"
)

func newInitCommand() *cobra.Command {
	var (
		title         string
		svgPath       string
		port          int
		dir           string
		noInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a demo viewer page",
		Long: `Creates svgpan.yml and a public/index.html demo page wired to the pan/zoom
client, either interactively or from flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := ui.ScaffoldConfig{
				Dir:     dir,
				Title:   title,
				SVGPath: svgPath,
				Port:    port,
			}

			isTerminal := false
			if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
				isTerminal = true
			}

			cfg := defaults
			if !noInteractive && isTerminal {
				var err error
				cfg, err = ui.RunInitTUI(defaults)
				if err != nil {
					return err
				}
				cfg.Dir = dir
			}

			if err := scaffold(cfg); err != nil {
				return fmt.Errorf("failed to scaffold demo: %w", err)
			}

			fmt.Println(ui.SuccessStyle.Render("\n✨ Demo scaffolded!"))
			fmt.Println("\nNext steps:")
			if dir != "." {
				fmt.Printf("  cd %s\n", dir)
			}
			fmt.Println("  svgpan dev")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "svgpan demo", "Demo page title")
	cmd.Flags().StringVar(&svgPath, "svg", "", "SVG document to embed (defaults to a built-in sample)")
	cmd.Flags().IntVar(&port, "port", 5173, "Dev server port")
	cmd.Flags().StringVar(&dir, "dir", ".", "Target directory")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Force non-interactive mode")

	return cmd
}

// scaffold writes svgpan.yml and the demo page into cfg.Dir.
func scaffold(cfg ui.ScaffoldConfig) error {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if err := os.MkdirAll(filepath.Join(cfg.Dir, "public"), 0o755); err != nil {
		return err
	}

	projectCfg := config.DefaultConfig()
	projectCfg.Demo.Title = cfg.Title
	projectCfg.Demo.SVGPath = cfg.SVGPath
	projectCfg.Dev.Port = cfg.Port
	if err := config.Save(projectCfg, cfg.Dir); err != nil {
		return fmt.Errorf("write svgpan.yml: %w", err)
	}

	svg, err := loadSVG(cfg.SVGPath)
	if err != nil {
		return err
	}

	html := strings.ReplaceAll(indexTemplate, "{{TITLE}}", cfg.Title)
	html = strings.Replace(html, "{{SVG}}", svg, 1)

	indexPath := filepath.Join(cfg.Dir, "public", "index.html")
	if err := os.WriteFile(indexPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write index.html: %w", err)
	}

	return nil
}

// loadSVG returns the demo SVG markup with id="diagram" on its root
// element. An empty path selects the built-in sample.
func loadSVG(path string) (string, error) {
	if path == "" {
		return sampleSVG, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read SVG %s: %w", path, err)
	}
	svg := string(data)
	if i := strings.Index(svg, "<svg"); i >= 0 {
		svg = svg[:i] + `<svg id="diagram"` + svg[i+len("<svg"):]
	} else {
		return "", fmt.Errorf("%s does not look like an SVG document", path)
	}
	return svg, nil
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{TITLE}}</title>
    <style>
        body { margin: 0; font-family: system-ui, sans-serif; }
        header { display: flex; align-items: center; gap: 0.5rem; padding: 0.5rem 1rem; border-bottom: 1px solid #ddd; }
        header h1 { font-size: 1rem; margin: 0 auto 0 0; }
        header button { padding: 0.25rem 0.75rem; }
        #zoom-level { min-width: 3.5rem; text-align: right; font-variant-numeric: tabular-nums; }
        #viewport { height: calc(100vh - 3rem); overflow: hidden; background: #fafafa; }
    </style>
    <script src="/wasm_exec.js"></script>
    <script src="/svgpan/bootstrap.js" defer></script>
</head>
<body>
    <header>
        <h1>{{TITLE}}</h1>
        <span id="zoom-level">100%</span>
        <button id="zoom-in" type="button">+</button>
        <button id="zoom-out" type="button">−</button>
        <button id="zoom-fit" type="button">Fit</button>
        <button id="zoom-reset" type="button">Reset</button>
    </header>
    <div id="viewport">
        {{SVG}}
    </div>
</body>
</html>
`

const sampleSVG = `<svg id="diagram" xmlns="http://www.w3.org/2000/svg" width="760" height="420" viewBox="0 0 760 420">
            <defs>
                <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
                    <path d="M 0 0 L 10 5 L 0 10 z" fill="#555"/>
                </marker>
            </defs>
            <rect x="60" y="40" width="160" height="60" rx="8" fill="#e3f2fd" stroke="#1976d2"/>
            <text x="140" y="75" text-anchor="middle" font-size="14">Request</text>
            <rect x="300" y="40" width="160" height="60" rx="8" fill="#e8f5e9" stroke="#388e3c"/>
            <text x="380" y="75" text-anchor="middle" font-size="14">Validate</text>
            <rect x="540" y="40" width="160" height="60" rx="8" fill="#fff3e0" stroke="#f57c00"/>
            <text x="620" y="75" text-anchor="middle" font-size="14">Dispatch</text>
            <rect x="300" y="200" width="160" height="60" rx="8" fill="#fce4ec" stroke="#c2185b"/>
            <text x="380" y="235" text-anchor="middle" font-size="14">Reject</text>
            <rect x="540" y="200" width="160" height="60" rx="8" fill="#ede7f6" stroke="#512da8"/>
            <text x="620" y="235" text-anchor="middle" font-size="14">Store</text>
            <rect x="420" y="330" width="160" height="60" rx="8" fill="#e0f7fa" stroke="#00838f"/>
            <text x="500" y="365" text-anchor="middle" font-size="14">Respond</text>
            <line x1="220" y1="70" x2="298" y2="70" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
            <line x1="460" y1="70" x2="538" y2="70" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
            <line x1="380" y1="100" x2="380" y2="198" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
            <line x1="620" y1="100" x2="620" y2="198" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
            <line x1="600" y1="260" x2="520" y2="328" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
            <line x1="400" y1="260" x2="470" y2="328" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>
        </svg>`
