package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTemp(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".beacon", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleOutputs() []Output {
	return []Output{
		{Name: "en", Flavor: "plain", Path: "dist/en/index.html", Bytes: 4096},
		{Name: "en", Flavor: "devtools-embed", Path: "dist/devtools-en/index.html", Bytes: 4110},
		{Name: "error", Flavor: "psi-embed", Path: "dist/psi-error/index.html", Bytes: 9001},
	}
}

func TestRecordAndGetBuild(t *testing.T) {
	s := openTemp(t)
	id, err := s.RecordBuild(&Build{BaseURL: "https://example.com/", DistDir: "dist"}, sampleOutputs())
	if err != nil {
		t.Fatalf("RecordBuild: %v", err)
	}
	b, err := s.GetBuild(id)
	if err != nil {
		t.Fatalf("GetBuild: %v", err)
	}
	if b.BaseURL != "https://example.com/" || b.FileCount != 3 {
		t.Errorf("got %+v", b)
	}
	if b.StartedAt == "" || b.FinishedAt == "" {
		t.Errorf("timestamps not defaulted: %+v", b)
	}
}

func TestListOutputs_Order(t *testing.T) {
	s := openTemp(t)
	id, err := s.RecordBuild(&Build{BaseURL: "u", DistDir: "d"}, sampleOutputs())
	if err != nil {
		t.Fatalf("RecordBuild: %v", err)
	}
	got, err := s.ListOutputs(id)
	if err != nil {
		t.Fatalf("ListOutputs: %v", err)
	}
	ignore := cmpopts.IgnoreFields(Output{}, "ID", "BuildID")
	if diff := cmp.Diff(sampleOutputs(), got, ignore); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	for _, o := range got {
		if o.BuildID != id {
			t.Errorf("output %d has build id %d, want %d", o.ID, o.BuildID, id)
		}
	}
}

func TestListBuilds_NewestFirst(t *testing.T) {
	s := openTemp(t)
	first, _ := s.RecordBuild(&Build{BaseURL: "a", DistDir: "d"}, nil)
	second, _ := s.RecordBuild(&Build{BaseURL: "b", DistDir: "d"}, nil)
	builds, err := s.ListBuilds()
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 2 || builds[0].ID != second || builds[1].ID != first {
		t.Errorf("got %+v", builds)
	}
}

func TestGetBuild_NotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.GetBuild(99); err == nil {
		t.Fatal("want error for missing build")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := s.RecordBuild(&Build{BaseURL: "u", DistDir: "d"}, sampleOutputs())
	if err != nil {
		t.Fatalf("RecordBuild: %v", err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	b, err := s2.GetBuild(id)
	if err != nil {
		t.Fatalf("GetBuild after reopen: %v", err)
	}
	if b.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", b.FileCount)
	}
}

func TestMemStoreMatchesInterface(t *testing.T) {
	var s Store = NewMemStore()
	id, err := s.RecordBuild(&Build{BaseURL: "u", DistDir: "d"}, sampleOutputs())
	if err != nil {
		t.Fatalf("RecordBuild: %v", err)
	}
	outs, err := s.ListOutputs(id)
	if err != nil || len(outs) != 3 {
		t.Fatalf("ListOutputs = %v, %v", outs, err)
	}
	if _, err := s.GetBuild(id); err != nil {
		t.Errorf("GetBuild: %v", err)
	}
}
