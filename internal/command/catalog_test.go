package command

import (
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoadCatalog_Embedded(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got := strings.Join(c.Locales(), ","); got != "en,zh" {
		t.Fatalf("expected locales en,zh, got %s", got)
	}
	if got := c.Printer(language.Chinese).Sprintf("level.failure"); got != "失败" {
		t.Errorf("zh level.failure = %q", got)
	}
	if got := c.Printer(language.MustParse("zh-CN")).Sprintf("level.failure"); got != "失败" {
		t.Errorf("zh-CN should fall back to zh, got %q", got)
	}
	if got := c.Printer(language.French).Sprintf("level.failure"); got != "Failure" {
		t.Errorf("unsupported locale should fall back to en, got %q", got)
	}
}

func TestLoadCatalogFS_Errors(t *testing.T) {
	en := "locale: en\nmessages:\n  a: A\n  b: B\n"
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name:    "no files",
			files:   fstest.MapFS{},
			wantErr: "no catalog files",
		},
		{
			name:    "no base locale",
			files:   fstest.MapFS{"locales/zh.yaml": {Data: []byte("locale: zh\nmessages:\n  a: 甲\n")}},
			wantErr: "base locale en",
		},
		{
			name: "locale mismatch",
			files: fstest.MapFS{
				"locales/en.yaml": {Data: []byte(en)},
				"locales/zh.yaml": {Data: []byte("locale: fr\nmessages:\n  a: A\n")},
			},
			wantErr: "must match file name",
		},
		{
			name: "missing key",
			files: fstest.MapFS{
				"locales/en.yaml": {Data: []byte(en)},
				"locales/zh.yaml": {Data: []byte("locale: zh\nmessages:\n  a: 甲\n")},
			},
			wantErr: "missing keys b",
		},
		{
			name: "extra key",
			files: fstest.MapFS{
				"locales/en.yaml": {Data: []byte(en)},
				"locales/zh.yaml": {Data: []byte("locale: zh\nmessages:\n  a: 甲\n  b: 乙\n  c: 丙\n")},
			},
			wantErr: "keys not in en: c",
		},
		{
			name:    "no messages",
			files:   fstest.MapFS{"locales/en.yaml": {Data: []byte("locale: en\n")}},
			wantErr: "messages map is required",
		},
		{
			name:    "bad yaml",
			files:   fstest.MapFS{"locales/en.yaml": {Data: []byte("locale: [en\n")}},
			wantErr: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalogFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
