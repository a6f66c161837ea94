package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wtf/internal/policy"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessFileFixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n\n\n")

	var out bytes.Buffer
	res, err := ProcessFile(context.Background(), path, &out, Options{Policy: policy.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "x\n" {
		t.Fatalf("output = %q", out.String())
	}
	if !res.Changed() {
		t.Fatal("expected Changed()")
	}
	if string(res.RefEOL) != "\n" {
		t.Fatalf("RefEOL = %q", res.RefEOL)
	}
}

func TestProcessFileMissing(t *testing.T) {
	_, err := ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent"), nil, Options{Policy: policy.Default()})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestListFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "a.txt"), "")
	writeFile(t, filepath.Join(dir, "c.md"), "")
	writeFile(t, filepath.Join(dir, "sub", "d.txt"), "")

	files, err := ListFiles(dir, []string{".txt"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "d.txt"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}

	all, err := ListFiles(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 files without filter, got %d", len(all))
	}
}

func TestCheckFilesNeverWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n\n\n")

	results, err := CheckFiles(context.Background(), []string{path}, Options{Policy: policy.Default()}, 2, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	c := results[0].Counters
	if c.TotalSeen() == 0 {
		t.Fatal("expected issues to be seen")
	}
	if c.TotalFixed() != 0 {
		t.Fatalf("check must not fix anything, got %d", c.TotalFixed())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x  \n\n\n" {
		t.Fatalf("check modified the file: %q", got)
	}
}

func TestCheckFilesDeterministicAcrossJobs(t *testing.T) {
	dir := t.TempDir()
	var files []string
	contents := []string{"x  \n", "clean\n", "a\r\nb\n", "y"}
	for i, content := range contents {
		path := filepath.Join(dir, string(rune('a'+i))+".txt")
		writeFile(t, path, content)
		files = append(files, path)
	}

	baseline, err := CheckFiles(context.Background(), files, Options{Policy: policy.Default()}, 1, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, jobs := range []int{0, 2, 8} {
		results, err := CheckFiles(context.Background(), files, Options{Policy: policy.Default()}, jobs, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := range baseline {
			if results[i].Path != baseline[i].Path {
				t.Fatalf("jobs=%d: order differs at %d: %s vs %s", jobs, i, results[i].Path, baseline[i].Path)
			}
			if diff := cmp.Diff(baseline[i].Counters, results[i].Counters); diff != "" {
				t.Fatalf("jobs=%d: counters differ for %s:\n%s", jobs, results[i].Path, diff)
			}
		}
	}
}

func TestCheckFilesEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n")

	events := make(chan Event, 8)
	if _, err := CheckFiles(context.Background(), []string{path}, Options{Policy: policy.Default()}, 1, nil, events); err != nil {
		t.Fatal(err)
	}
	close(events)

	var statuses []Status
	for ev := range events {
		if ev.Path != path {
			t.Fatalf("unexpected event path %q", ev.Path)
		}
		statuses = append(statuses, ev.Status)
	}
	want := []Status{StatusProcessing, StatusIssues}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cacheDir := t.TempDir()
	cache, err := OpenCacheAt(cacheDir)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n")
	pol := policy.Default().Reporting()

	first, err := CheckFiles(context.Background(), []string{path}, Options{Policy: pol}, 1, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached {
		t.Fatal("first pass must not be served from cache")
	}

	second, err := CheckFiles(context.Background(), []string{path}, Options{Policy: pol}, 1, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached {
		t.Fatal("second pass should hit the cache")
	}
	if diff := cmp.Diff(first[0].Counters, second[0].Counters); diff != "" {
		t.Fatalf("cached counters differ:\n%s", diff)
	}
}

func TestCacheMissOnContentChange(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n")
	pol := policy.Default().Reporting()

	if _, err := CheckFiles(context.Background(), []string{path}, Options{Policy: pol}, 1, cache, nil); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "different  \n\n")
	results, err := CheckFiles(context.Background(), []string{path}, Options{Policy: pol}, 1, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Cached {
		t.Fatal("changed content must miss the cache")
	}
}

func TestCacheMissOnPolicyChange(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "x  \n")

	if _, err := CheckFiles(context.Background(), []string{path}, Options{Policy: policy.Default()}, 1, cache, nil); err != nil {
		t.Fatal(err)
	}
	other := policy.Default()
	other.TrailSpace = policy.ActionIgnore
	results, err := CheckFiles(context.Background(), []string{path}, Options{Policy: other}, 1, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Cached {
		t.Fatal("different policy must miss the cache")
	}
}
