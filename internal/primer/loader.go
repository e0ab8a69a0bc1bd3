// internal/primer/loader.go
package primer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"headloop/internal/design"
	"headloop/internal/oligo"
)

// LoadTSV reads design requests from a whitespace-delimited file:
//
//	id  sense_primer  antisense_primer  guide_context  orientation
//
// Blank lines and lines starting with '#' are skipped.
func LoadTSV(path string) ([]design.Request, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var list []design.Request
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 5 {
			return nil, fmt.Errorf("%s:%d bad field count (want 5, got %d)", path, ln, len(f))
		}
		req := design.Request{ID: f[0], Orientation: design.Orientation(strings.ToLower(f[4]))}
		if req.Sense, err = oligo.Validate(f[1]); err != nil {
			return nil, fmt.Errorf("%s:%d sense primer: %v", path, ln, err)
		}
		if req.Antisense, err = oligo.Validate(f[2]); err != nil {
			return nil, fmt.Errorf("%s:%d antisense primer: %v", path, ln, err)
		}
		if req.GuideContext, err = oligo.Validate(f[3]); err != nil {
			return nil, fmt.Errorf("%s:%d guide context: %v", path, ln, err)
		}
		list = append(list, req)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
