package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diagramlab/svgpan/cmd/svgpan/internal/config"
)

func newBuildCommand() *cobra.Command {
	var output string
	var optimize bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the demo for production",
		Long:  `Creates an optimized production build of the WASM client and static demo assets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, output, optimize)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (defaults to svgpan.yml build.output)")
	cmd.Flags().BoolVar(&optimize, "optimize", true, "Strip debug info from the WASM binary")

	return cmd
}

func runBuild(cmd *cobra.Command, output string, optimize bool) error {
	log.Println("🚀 Building svgpan demo for production...")

	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load svgpan.yml: %v (using defaults)", err)
		cfg = config.DefaultConfig()
	}

	if output == "" {
		output = cfg.Build.Output
	}
	if !cmd.Flags().Changed("optimize") {
		optimize = cfg.Build.Optimize
	}

	if err := os.RemoveAll(output); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(output, "assets"), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Println("🔨 Building WASM client...")

	wasmPath := filepath.Join(output, "assets", "app.wasm")

	args := []string{"build", "-o", wasmPath}
	if optimize {
		args = append(args, "-ldflags", "-s -w")
	}

	mainPath := "./app/client"
	if _, err := os.Stat("app/client"); os.IsNotExist(err) {
		mainPath = "./app"
	}
	args = append(args, mainPath)

	buildCmd := exec.Command("go", args...)
	buildCmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if cmdOutput, err := buildCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wasm build failed: %w\nOutput: %s", err, cmdOutput)
	}

	log.Println("📄 Copying wasm_exec.js...")
	wasmExec, err := readWasmExec()
	if err != nil {
		return fmt.Errorf("failed to copy wasm_exec.js: %w", err)
	}
	if err := os.WriteFile(filepath.Join(output, "assets", "wasm_exec.js"), wasmExec, 0o644); err != nil {
		return fmt.Errorf("failed to write wasm_exec.js: %w", err)
	}

	log.Println("📄 Copying bootstrap.js...")
	if len(bootstrapJS) == 0 {
		return fmt.Errorf("embedded bootstrap.js missing")
	}
	if err := os.WriteFile(filepath.Join(output, "assets", "bootstrap.js"), bootstrapJS, 0o644); err != nil {
		return fmt.Errorf("failed to write bootstrap.js: %w", err)
	}

	if err := copyStaticFiles(output); err != nil {
		return fmt.Errorf("failed to copy static files: %w", err)
	}

	// Point the page at the production asset paths
	if err := rewriteAssetPaths(filepath.Join(output, "index.html")); err != nil {
		log.Printf("⚠️  Failed to rewrite asset paths: %v", err)
	}

	log.Println("\n📊 Build complete!")
	reportBuildSizes(output)

	return nil
}

func copyStaticFiles(output string) error {
	info, err := os.Stat("public")
	if err != nil || !info.IsDir() {
		return nil
	}

	return filepath.Walk("public", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Skip WASM files (already built)
		if strings.HasSuffix(path, ".wasm") {
			return nil
		}

		relPath, err := filepath.Rel("public", path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(output, relPath)
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}

		input, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return os.WriteFile(destPath, input, 0o644)
	})
}

// rewriteAssetPaths updates dev server asset URLs to the dist layout.
func rewriteAssetPaths(indexPath string) error {
	content, err := os.ReadFile(indexPath)
	if err != nil {
		return err
	}
	html := string(content)
	html = strings.ReplaceAll(html, "/wasm_exec.js", "/assets/wasm_exec.js")
	html = strings.ReplaceAll(html, "/svgpan/bootstrap.js", "/assets/bootstrap.js")
	return os.WriteFile(indexPath, []byte(html), 0o644)
}

func reportBuildSizes(output string) {
	wasmPath := filepath.Join(output, "assets", "app.wasm")
	if info, err := os.Stat(wasmPath); err == nil {
		log.Printf("  WASM:        %s", formatSize(info.Size()))
		log.Printf("  WASM (gzip): %s", formatSize(getGzippedSize(wasmPath)))
	}

	var totalSize int64
	filepath.Walk(output, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	log.Printf("  Total:       %s", formatSize(totalSize))
	log.Printf("\n✨ Build output: %s", output)
}

func getGzippedSize(path string) int64 {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write(content)
	gz.Close()

	return int64(buf.Len())
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
