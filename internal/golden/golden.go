// Package golden runs *.lc programs and checks them against expectation
// files kept beside them.
//
// For prog.lc, a sibling prog.nf holds the expected normal form as printed by
// Expression.String. A sibling prog.err instead holds the diagnostic code the
// program is expected to fail with.
package golden

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/malphas-lang/lambda/internal/pipeline"
	"github.com/malphas-lang/lambda/internal/source"
)

const (
	programExt = ".lc"
	normalExt  = ".nf"
	errorExt   = ".err"
)

// Result is the outcome of one program.
type Result struct {
	Name   string
	Passed bool
	Got    string
	Want   string
	Err    error
}

// Discover returns every program under paths in lexical order. Directories
// are walked recursively, skipping hidden ones. No paths means ".".
func Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "accessing %s", root)
		}
		if !info.IsDir() {
			if filepath.Ext(root) == programExt {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == programExt {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

// RunFile evaluates one program and compares it with its expectation.
func RunFile(ctx context.Context, path string, opts pipeline.Options) Result {
	res := Result{Name: path}
	stem := strings.TrimSuffix(path, programExt)

	want, wantErr, err := expectation(stem)
	if err != nil {
		res.Err = err
		return res
	}

	text, err := source.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	opts.Filename = path
	out, runErr := pipeline.RunString(ctx, text, opts)

	if wantErr {
		res.Want = want
		ds := pipeline.Diagnostics(runErr)
		switch {
		case runErr == nil:
			res.Got = out.Normal.String()
		case len(ds) == 0:
			res.Err = runErr
			return res
		default:
			res.Got = string(ds[0].Code)
		}
		res.Passed = res.Got == res.Want
		return res
	}

	res.Want = want
	if runErr != nil {
		res.Err = runErr
		return res
	}
	res.Got = out.Normal.String()
	res.Passed = res.Got == res.Want
	return res
}

// expectation loads the .nf or .err file for stem. isErr reports which one
// was found.
func expectation(stem string) (want string, isErr bool, err error) {
	if b, err := os.ReadFile(stem + normalExt); err == nil {
		return strings.TrimSpace(string(b)), false, nil
	} else if !os.IsNotExist(err) {
		return "", false, errors.Wrap(err, "reading expected normal form")
	}

	if b, err := os.ReadFile(stem + errorExt); err == nil {
		return strings.TrimSpace(string(b)), true, nil
	} else if !os.IsNotExist(err) {
		return "", false, errors.Wrap(err, "reading expected error")
	}

	return "", false, errors.Errorf("no %s or %s file beside %s%s", normalExt, errorExt, stem, programExt)
}

// Run discovers and runs every program under paths.
func Run(ctx context.Context, paths []string, opts pipeline.Options) ([]Result, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, RunFile(ctx, f, opts))
	}
	return results, nil
}

// Summary returns one error per failed result, or nil when all passed.
func Summary(results []Result) error {
	var merr *multierror.Error
	for _, r := range results {
		switch {
		case r.Passed:
		case r.Err != nil:
			merr = multierror.Append(merr, errors.Wrap(r.Err, r.Name))
		default:
			merr = multierror.Append(merr, errors.Errorf("%s: got %q, want %q", r.Name, r.Got, r.Want))
		}
	}
	return merr.ErrorOrNil()
}
