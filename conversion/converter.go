// Package conversion renders newsletter-draft Markdown to HTML for export.
package conversion

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"os/exec"
	"time"
)

// Converter converts draft Markdown to HTML, preferring pandoc when it is
// installed and degrading to preformatted-text wrapping when it is not.
type Converter struct {
	pandocPath string
	timeout    time.Duration
}

// NewConverter creates a new Converter, attempting to find pandoc.
func NewConverter() *Converter {
	path, err := exec.LookPath("pandoc")
	if err != nil {
		log.Printf("WARN (Converter): pandoc executable not found in PATH. Newsletter exports will fall back to preformatted text.")
	} else {
		log.Printf("INFO (Converter): Found pandoc executable at: %s", path)
	}
	return &Converter{
		pandocPath: path,
		timeout:    30 * time.Second,
	}
}

// MarkdownToHTML renders the Markdown draft as an HTML document body.
func (c *Converter) MarkdownToHTML(ctx context.Context, markdown []byte) ([]byte, error) {
	if c.pandocPath == "" {
		return []byte("<pre>" + html.EscapeString(string(markdown)) + "</pre>"), nil
	}

	htmlBytes, err := c.runPandoc(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("pandoc conversion from markdown failed: %w", err)
	}
	return htmlBytes, nil
}

// runPandoc executes pandoc with the draft on stdin.
func (c *Converter) runPandoc(ctx context.Context, input []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.pandocPath, "-f", "markdown", "-t", "html")

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe for pandoc: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start pandoc command: %w", err)
	}

	go func() {
		defer stdinPipe.Close()
		if _, err := io.Copy(stdinPipe, bytes.NewReader(input)); err != nil {
			log.Printf("ERROR (Converter): Failed writing to pandoc stdin: %v", err)
		}
	}()

	if err := cmd.Wait(); err != nil {
		stderrOutput := stderrBuf.String()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pandoc execution timed out after %v: %w. Stderr: %s", c.timeout, ctx.Err(), stderrOutput)
		}
		return nil, fmt.Errorf("pandoc execution failed: %w. Stderr: %s", err, stderrOutput)
	}

	if stderrOutput := stderrBuf.String(); stderrOutput != "" {
		log.Printf("WARN (Converter): pandoc stderr output during markdown to html conversion:\n%s", stderrOutput)
	}

	return stdoutBuf.Bytes(), nil
}
