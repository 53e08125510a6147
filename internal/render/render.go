package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FindDotBinary locates the graphviz layout binary.
// Search order: KNOWVIZ_DOT env var, PATH lookup.
func FindDotBinary() (string, error) {
	if envPath := os.Getenv("KNOWVIZ_DOT"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	if path, err := exec.LookPath("dot"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("graphviz 'dot' not found: set KNOWVIZ_DOT or install graphviz")
}

// PNG lays the graph out with the system renderer and writes a raster
// image to path, overwriting any existing file. A missing renderer is
// an environment fault; callers are expected to keep going.
func (g *Graph) PNG(path string) error {
	binary, err := FindDotBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(binary, "-Tpng", "-o", path)
	cmd.Stdin = strings.NewReader(g.DOT())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rendering %s: %w (stderr: %s)", path, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
