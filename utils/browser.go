package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// FindChromeBinary locates a Chrome/Chromium binary. An explicit path wins.
// An empty result lets chromedp fall back to its own lookup.
func FindChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Confirm prints prompt to out and blocks until a line (or EOF) is read from in.
func Confirm(in io.Reader, out io.Writer, prompt string) {
	fmt.Fprint(out, prompt)
	_, _ = bufio.NewReader(in).ReadString('\n')
}
