package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

// readDomainList reads a line-delimited hosts file, skipping blank
// lines and comments.
func readDomainList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hosts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	return hosts, sc.Err()
}

// pageStarts expands a page count into the offsets the fan-out queries
// (0, 10, ... per page).
func pageStarts(pages int) []int {
	if pages <= 0 {
		pages = 10
	}
	starts := make([]int, pages)
	for i := range starts {
		starts[i] = i * 10
	}
	return starts
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
