package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/schemair/gomap"
)

// input is one schema document read from a file or stdin.
type input struct {
	name string
	doc  *gomap.Document
}

func (in *input) String() string { return in.name }

// readInputs decodes the documents of files, separated by "---" lines.
// No files, or "-", reads r.
func readInputs(cfg *MainConfig, r io.Reader, files []string) ([]*input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var res []*input
	for _, file := range files {
		ins, err := readFile(cfg, r, file)
		if err != nil {
			return nil, err
		}
		res = append(res, ins...)
	}
	return res, nil
}

func readFile(cfg *MainConfig, r io.Reader, file string) ([]*input, error) {
	name := file
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	} else {
		name = "<stdin>"
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	docs := bytes.Split(d, []byte("\n---\n"))
	res := make([]*input, 0, len(docs))
	for i, doc := range docs {
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}
		docName := name
		if len(docs) > 1 {
			docName = fmt.Sprintf("%s#%d", name, i)
		}
		gDoc, err := gomap.LoadDocument(doc, cfg.decOpts()...)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", docName, err)
		}
		res = append(res, &input{name: docName, doc: gDoc})
	}
	return res, nil
}

func writeSep(w io.Writer, i, n int) error {
	if i >= n-1 {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}
