package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/meter.yaml":       {Data: []byte("idleColor: \"#525252\"\n")},
		"data/presets/hot.yaml": {Data: []byte("variants: []\n")},
		"other/readme.txt":      {Data: []byte("x")},
	}
}

// TestNotInitialized 测试未初始化时的各个接口
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false before Init()")
	}
	if _, err := Open("data/meter.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/meter.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile error = %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("data/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadDir("data"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadDir error = %v, want ErrNotInitialized", err)
	}
	if _, err := Stat("data/meter.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Stat error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/meter.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取与路径规范化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name string
		path string
	}{
		{"标准路径", "data/meter.yaml"},
		{"带 ./ 前缀", "./data/meter.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(data) != "idleColor: \"#525252\"\n" {
				t.Errorf("ReadFile(%q) = %q", tt.path, data)
			}
		})
	}
}

// TestInvalidPrefix 测试非 data/ 路径
func TestInvalidPrefix(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	_, err := ReadFile("other/readme.txt")
	if err == nil {
		t.Fatal("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: other/readme.txt (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if Exists("other/readme.txt") {
		t.Error("Exists should reject paths outside data/")
	}
}

// TestLookup 测试 Exists / Glob / ReadDir / Stat
func TestLookup(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/meter.yaml") {
		t.Error("Expected data/meter.yaml to exist")
	}
	if Exists("data/missing.yaml") {
		t.Error("Expected data/missing.yaml not to exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 1 || matches[0] != "data/meter.yaml" {
		t.Errorf("Glob = %v, want [data/meter.yaml]", matches)
	}

	entries, err := ReadDir("data/presets")
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "hot.yaml" {
		t.Errorf("ReadDir = %v", entries)
	}

	info, err := Stat("data/meter.yaml")
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.IsDir() {
		t.Error("Expected a file")
	}
}
