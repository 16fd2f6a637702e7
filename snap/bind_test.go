//nolint:testpackage // using package name 'snap' to access unexported fields for testing
package snap

import (
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
	"github.com/dzonerzy/go-snapargs/internal/convert"
)

func bindModel() *ParseModel {
	return NewModel().Delimiters('-').
		Arg("Files", "f").OneOrMore().Back().
		Arg("Recurse").Back().
		Arg("Count").One().Back().
		Arg("log-level").One().Back().
		Arg("id").One().Back().
		Arg("Version").One().Back().
		Arg("Tags").OneOrMore().Back().
		Arg("Items").ZeroOrMore().Back().
		Arg("Timeout").One().Back().
		Arg("Key").One().AssumeHex().Back().
		MustBuild()
}

func mustParse(t *testing.T, model *ParseModel, fsys snapfs.Filesystem, args ...string) *ParseResult {
	t.Helper()
	r, err := newTestParser(t, model, fsys).Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return r
}

type bindOptions struct {
	Files                 []string
	Recurse               bool
	Count                 *int
	Level                 int `arg:"log-level"`
	ID                    uuid.UUID
	Version               *semver.Version
	Tags                  [2]string
	Items                 iter.Seq[int]
	Timeout               time.Duration
	Key                   []byte
	Skipped               string `arg:"-"`
	UnnamedValues         []string
	LeadingUnnamedValues  []string
	TrailingUnnamedValues []string
	ParseWarnings         error

	hidden string
}

func TestBind(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	r := mustParse(t, bindModel(), nil,
		"lead",
		"-Files", "a.txt", "b.txt",
		"-Count", "3",
		"-log-level", "2",
		"-id", id.String(),
		"-Version", "1.2.3",
		"-Tags", "x", "y",
		"-Items", "1", "2", "3",
		"-Timeout", "1:30",
		"-Key", "0a0b",
		"-Recurse", "tail",
	)

	got, err := Bind[bindOptions](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, got.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if !got.Recurse {
		t.Errorf("Recurse switch not set")
	}
	if got.Count == nil || *got.Count != 3 {
		t.Errorf("Count = %v", got.Count)
	}
	if got.Level != 2 {
		t.Errorf("Level = %d", got.Level)
	}
	if got.ID != id {
		t.Errorf("ID = %s", got.ID)
	}
	if got.Version == nil || !got.Version.Equal(semver.MustParse("1.2.3")) {
		t.Errorf("Version = %v", got.Version)
	}
	if got.Tags != [2]string{"x", "y"} {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Items == nil {
		t.Fatalf("Items not bound")
	}
	// The sequence is persistent and can be ranged over twice.
	for range 2 {
		if items := slices.Collect(got.Items); !cmp.Equal(items, []int{1, 2, 3}) {
			t.Errorf("Items = %v", items)
		}
	}
	if got.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s", got.Timeout)
	}
	if diff := cmp.Diff([]byte{0x0a, 0x0b}, got.Key); diff != "" {
		t.Errorf("Key mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"lead", "tail"}, got.UnnamedValues); diff != "" {
		t.Errorf("UnnamedValues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"lead"}, got.LeadingUnnamedValues); diff != "" {
		t.Errorf("LeadingUnnamedValues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"tail"}, got.TrailingUnnamedValues); diff != "" {
		t.Errorf("TrailingUnnamedValues mismatch (-want +got):\n%s", diff)
	}
	if got.ParseWarnings != nil {
		t.Errorf("ParseWarnings = %v", got.ParseWarnings)
	}
}

func TestBindDirectoryValue(t *testing.T) {
	model := NewModel().Delimiters('-').Arg("Directory").One().Required().Back().MustBuild()
	r := mustParse(t, model, nil, "-Directory", `C:\Temp`)

	got, err := Bind[struct{ Directory string }](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.Directory != `C:\Temp` {
		t.Errorf("Directory = %q", got.Directory)
	}
}

func TestBindAbsentArguments(t *testing.T) {
	r := mustParse(t, bindModel(), nil, "-Files", "a")
	got, err := Bind[bindOptions](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.Count != nil || got.Recurse || got.Items != nil || got.UnnamedValues != nil {
		t.Errorf("absent arguments were bound: %+v", got)
	}
}

func TestBindSwitchPointer(t *testing.T) {
	model := NewModel().Delimiters('-').Arg("Verbose").Back().MustBuild()
	got, err := Bind[struct{ Verbose *bool }](mustParse(t, model, nil, "-Verbose"))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.Verbose == nil || !*got.Verbose {
		t.Errorf("Verbose = %v", got.Verbose)
	}
}

func TestBindErrors(t *testing.T) {
	model := bindModel()
	tests := []struct {
		name string
		args []string
		bind func(*ParseResult) error
		want ErrorType
	}{
		{
			name: "many values into scalar",
			args: []string{"-Files", "a", "b"},
			bind: func(r *ParseResult) error {
				_, err := Bind[struct{ Files string }](r)
				return err
			},
			want: ErrorTypeBindingConflict,
		},
		{
			name: "array length",
			args: []string{"-Tags", "a", "b", "c"},
			bind: func(r *ParseResult) error {
				_, err := Bind[struct{ Tags [2]string }](r)
				return err
			},
			want: ErrorTypeBindingConflict,
		},
		{
			name: "conversion",
			args: []string{"-Count", "many"},
			bind: func(r *ParseResult) error {
				_, err := Bind[struct{ Count int }](r)
				return err
			},
			want: ErrorTypeValueConversion,
		},
		{
			name: "element conversion",
			args: []string{"-Items", "1", "two"},
			bind: func(r *ParseResult) error {
				_, err := Bind[struct{ Items []int }](r)
				return err
			},
			want: ErrorTypeValueConversion,
		},
		{
			name: "not a struct",
			args: []string{"-Count", "1"},
			bind: func(r *ParseResult) error {
				_, err := Bind[int](r)
				return err
			},
			want: ErrorTypeBindingConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bind(mustParse(t, model, nil, tt.args...))
			if !IsErrorType(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestBindConversionErrorNamesArgument(t *testing.T) {
	r := mustParse(t, bindModel(), nil, "-Count", "many")
	_, err := Bind[struct{ Count int }](r)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Argument != "Count" || !cmp.Equal(pe.Values, []string{"many"}) {
		t.Errorf("got argument %q values %v", pe.Argument, pe.Values)
	}
	var convErr *convert.ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("cause is not a *convert.ConversionError: %v", err)
	}
}

func TestBindReadFileContent(t *testing.T) {
	fsys := snapfs.NewMemory("/work").
		WriteText("port.txt", " 8080\n").
		WriteText("hosts.txt", "a\nb\n").
		WriteText("nums.txt", "1\n2\n3\n")
	model := NewModel().Delimiters('-').
		Arg("Port").One().ReadFileContent().ExistingFile().Back().
		Arg("Hosts").One().ReadFileContent().Back().
		Arg("Nums").One().ReadFileContent().Back().
		MustBuild()
	r := mustParse(t, model, fsys, "-Port", "port.txt", "-Hosts", "hosts.txt", "-Nums", "nums.txt")

	got, err := Bind[struct {
		Port  int
		Hosts []string
		Nums  []int
	}](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.Port != 8080 {
		t.Errorf("Port = %d", got.Port)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got.Hosts); diff != "" {
		t.Errorf("Hosts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got.Nums); diff != "" {
		t.Errorf("Nums mismatch (-want +got):\n%s", diff)
	}

	nums, err := Get[[]int](r, "Nums")
	if err != nil {
		t.Fatalf("Get[[]int]: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, nums); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestBindDirectoryExpansion(t *testing.T) {
	fsys := snapfs.NewMemory("/work").
		WriteText("src/a.go", "").
		WriteText("src/b.go", "").
		Mkdir("src/sub")
	model := NewModel().Delimiters('-').
		Arg("Src").One().ExistingDirectory().Back().
		MustBuild()
	r := mustParse(t, model, fsys, "-Src", "src")

	got, err := Bind[struct {
		Src []snapfs.File `arg:"src"`
	}](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	want := []snapfs.File{{Path: "/work/src/a.go"}, {Path: "/work/src/b.go"}}
	if diff := cmp.Diff(want, got.Src); diff != "" {
		t.Errorf("Src mismatch (-want +got):\n%s", diff)
	}

	dir, err := Get[snapfs.Dir](r, "Src")
	if err != nil || dir.Path != "/work/src" {
		t.Errorf("Get[Dir] = %v, %v", dir, err)
	}
}

func TestBindWarnings(t *testing.T) {
	model := NewModel().Delimiters('-').Arg("A").ZeroOrMore().Back().MustBuild()
	groups := []Group{unnamed("x"), named("A"), unnamed("y"), named("A"), unnamed("z")}
	res := Resolve(groups, model)
	_, warnings := Validate(res, model, snapfs.NewMemory("/"))
	r := &ParseResult{model: model, resolution: res, warnings: warnings, chain: convert.Default(snapfs.NewMemory("/"))}

	got, err := Bind[struct{ ParseWarnings error }](r)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !IsErrorType(got.ParseWarnings, ErrorTypeUnnamedWarning) {
		t.Errorf("ParseWarnings = %v", got.ParseWarnings)
	}

	w, err := Bind[struct{ ParseWarnings *Warnings }](r)
	if err != nil || w.ParseWarnings.Len() != 1 {
		t.Errorf("*Warnings binding = %v, %v", w.ParseWarnings, err)
	}
	if r.Warnings() == nil {
		t.Errorf("ParseResult.Warnings() = nil")
	}
}

func TestGet(t *testing.T) {
	r := mustParse(t, bindModel(), nil, "-Files", "a", "b", "-Count", "0x10")

	n, err := Get[int](r, "Count")
	if err != nil || n != 16 {
		t.Errorf("Get[int] = %d, %v", n, err)
	}
	files, err := Get[[]string](r, "f")
	if err != nil || !cmp.Equal(files, []string{"a", "b"}) {
		t.Errorf("Get[[]string] = %v, %v", files, err)
	}
	missing, err := Get[*int](r, "log-level")
	if err != nil || missing != nil {
		t.Errorf("absent argument = %v, %v", missing, err)
	}
	if _, err := Get[int](r, "Nope"); !IsErrorType(err, ErrorTypeUndefinedArgument) {
		t.Errorf("undeclared argument: %v", err)
	}
	if _, err := Get[string](r, "Files"); !IsErrorType(err, ErrorTypeBindingConflict) {
		t.Errorf("scalar of many values: %v", err)
	}
}
