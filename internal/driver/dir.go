package driver

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ListFiles возвращает отсортированный список обычных файлов в директории.
// exts фильтрует по суффиксам ("" или пустой список = все файлы).
func ListFiles(dir string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(exts) == 0 {
			files = append(files, path)
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckFiles scans files in parallel, report-only. The policy is forced into
// reporting mode, so no file is ever written — parallelism is safe here in a
// way it is not for in-place fixing, which needs exclusive per-file access.
// Results come back in input order. A non-nil cache short-circuits files whose
// content and policy fingerprint were seen before.
func CheckFiles(ctx context.Context, files []string, opts Options, jobs int, cache *Cache, events chan<- Event) ([]*Result, error) {
	opts.Policy = opts.Policy.Reporting()
	opts.Extra = nil // bags only; streaming interleaves badly across workers

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	fingerprint := opts.Policy.Fingerprint()
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(events, Event{Path: path, Status: StatusProcessing})

			if cache != nil {
				if res, ok := cache.Lookup(path, fingerprint); ok {
					results[i] = res
					emit(events, Event{Path: path, Status: checkStatus(res)})
					return nil
				}
			}

			res, err := ProcessFile(gctx, path, io.Discard, opts)
			if err != nil {
				emit(events, Event{Path: path, Status: StatusFailed, Err: err})
				return err
			}
			if cache != nil {
				// ошибки кэша не влияют на результат проверки
				_ = cache.Store(path, fingerprint, res)
			}
			results[i] = res
			emit(events, Event{Path: path, Status: checkStatus(res)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkStatus(res *Result) Status {
	if res.Counters.TotalSeen() > 0 {
		return StatusIssues
	}
	return StatusClean
}
