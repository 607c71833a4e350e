// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/ast"
)

// The compliance test runs the parser over the cases from "Parsing JSON is a
// Minefield" (https://seriot.ch/projects/parsing_json.html). Cases named y_*
// must parse, n_* must be rejected with a *jparse.Error, and i_* may go either
// way but must not panic.
var (
	doHardTest = flag.Bool("compliance-test", false,
		"Run full compliance test")
	hardTestURL = flag.String("compliance-test-repo", "https://github.com/nst/JSONTestSuite",
		"Compliance test repository URL")
	hardTestCache = flag.String("compliance-test-cache", "hard-test-suite.zip",
		"Local cache for the compliance test archive")
)

// A suiteCase is one input file from the compliance suite.
type suiteCase struct {
	Name  string // file name without directory or extension
	Class string // "y", "n", or "i"
	Input []byte
}

// loadSuite returns the parsing cases from the compliance archive, fetching
// and caching the archive if necessary.
func loadSuite(t *testing.T) []suiteCase {
	t.Helper()
	zr, err := openArchive(*hardTestCache, *hardTestURL+"/archive/refs/heads/master.zip")
	if err != nil {
		t.Fatalf("Open compliance archive: %v", err)
	}
	var out []suiteCase
	for _, f := range zr.File {
		dir, base := path.Split(f.Name)
		if !strings.HasSuffix(dir, "/test_parsing/") || path.Ext(base) != ".json" {
			continue
		}
		name := strings.TrimSuffix(base, ".json")
		class, _, _ := strings.Cut(name, "_")
		data, err := readZipFile(f)
		if err != nil {
			t.Fatalf("Read %q: %v", f.Name, err)
		}
		out = append(out, suiteCase{Name: name, Class: class, Input: data})
	}
	return out
}

func openArchive(cache, url string) (*zip.Reader, error) {
	if _, err := os.Stat(cache); errors.Is(err, os.ErrNotExist) {
		if err := fetchArchive(cache, url); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cache)
	if err != nil {
		return nil, err
	}
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}

func fetchArchive(cache, url string) error {
	rsp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %q: %s", url, rsp.Status)
	}
	f, err := os.Create(cache)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rsp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func TestCompliance(t *testing.T) {
	if !*doHardTest {
		t.Skip("Skipping compliance test because --compliance-test is false")
	}
	count := make(map[string]int)
	rejected := make(map[jparse.ErrorKind]int)
	for _, tc := range loadSuite(t) {
		count[tc.Class]++
		t.Run(tc.Name, func(t *testing.T) {
			v, err := ast.ParseBytes(tc.Input)
			switch tc.Class {
			case "y":
				if err != nil {
					t.Errorf("Parse: unexpected error: %v", err)
				}
			case "n":
				var perr *jparse.Error
				if err == nil {
					t.Errorf("Parse: got %s, want error", v.JSON())
				} else if !errors.As(err, &perr) {
					t.Errorf("Parse: error has type %T, want *jparse.Error", err)
				} else {
					rejected[perr.Kind]++
				}
			case "i":
				if err != nil {
					t.Logf("Rejected: %v", err)
				}
			default:
				t.Skipf("Unrecognized case class %q", tc.Class)
			}
		})
	}
	t.Logf("Ran %d accept, %d reject, %d indeterminate cases", count["y"], count["n"], count["i"])
	for kind, n := range rejected {
		t.Logf("Rejected %d inputs with %v", n, kind)
	}
}
