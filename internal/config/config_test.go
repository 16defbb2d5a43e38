package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	t.Setenv("SERVER_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("BASE_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("デフォルトホストが不正です: got %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("デフォルトポートが不正です: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		t.Error("読み込みタイムアウトが設定されていません")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		t.Error("シャットダウンタイムアウトが設定されていません")
	}

	// BASE_DIR 未設定時は実行ファイル（テストバイナリ）のディレクトリになる
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("実行ファイルのパス取得に失敗しました: %v", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		t.Fatalf("シンボリックリンクの解決に失敗しました: %v", err)
	}
	if cfg.Static.BaseDir != filepath.Dir(exe) {
		t.Errorf("ベースディレクトリが不正です: got %s, want %s", cfg.Static.BaseDir, filepath.Dir(exe))
	}
	if cfg.Static.EntryFile != DefaultEntryFile {
		t.Errorf("エントリファイルが不正です: got %s, want %s", cfg.Static.EntryFile, DefaultEntryFile)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("PORT", "9999")
	t.Setenv("BASE_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("環境変数のホストが反映されていません: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("環境変数のポートが反映されていません: got %d", cfg.Server.Port)
	}
	if cfg.Static.BaseDir != dir {
		t.Errorf("環境変数のベースディレクトリが反映されていません: got %s, want %s", cfg.Static.BaseDir, dir)
	}
}

// TestLoadRejectsMissingBaseDir は存在しないBASE_DIRでの失敗をテストする
func TestLoadRejectsMissingBaseDir(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BASE_DIR", filepath.Join(t.TempDir(), "missing"))

	if _, err := Load(); err == nil {
		t.Fatal("エラーが期待されましたが、エラーが発生しませんでした")
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		server    ServerConfig
		static    StaticConfig
		expectErr bool
	}{
		{
			name:   "正常な設定",
			server: ServerConfig{Host: "localhost", Port: 8000},
			static: StaticConfig{BaseDir: dir, EntryFile: "index.html"},
		},
		{
			name:      "無効なポート番号",
			server:    ServerConfig{Host: "localhost", Port: 99999},
			static:    StaticConfig{BaseDir: dir, EntryFile: "index.html"},
			expectErr: true,
		},
		{
			name:      "ベースディレクトリなし",
			server:    ServerConfig{Host: "localhost", Port: 8000},
			static:    StaticConfig{EntryFile: "index.html"},
			expectErr: true,
		},
		{
			name:      "相対パスのベースディレクトリ",
			server:    ServerConfig{Host: "localhost", Port: 8000},
			static:    StaticConfig{BaseDir: "public", EntryFile: "index.html"},
			expectErr: true,
		},
		{
			name:      "ベースディレクトリがファイル",
			server:    ServerConfig{Host: "localhost", Port: 8000},
			static:    StaticConfig{BaseDir: file, EntryFile: "index.html"},
			expectErr: true,
		},
		{
			name:      "エントリファイルにディレクトリを含む",
			server:    ServerConfig{Host: "localhost", Port: 8000},
			static:    StaticConfig{BaseDir: dir, EntryFile: "../index.html"},
			expectErr: true,
		},
		{
			name:      "エントリファイルなし",
			server:    ServerConfig{Host: "localhost", Port: 8000},
			static:    StaticConfig{BaseDir: dir},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Server: tc.server, Static: tc.static}
			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	testCases := []struct {
		host string
		want string
	}{
		{"192.168.1.100", "192.168.1.100:9090"},
		{"0.0.0.0", "0.0.0.0:9090"},
		{"", ":9090"},
		{"::", "[::]:9090"},
		{"::1", "[::1]:9090"},
	}

	for _, tc := range testCases {
		cfg := &Config{Server: ServerConfig{Host: tc.host, Port: 9090}}
		if actual := cfg.ServerAddress(); actual != tc.want {
			t.Errorf("サーバーアドレスが一致しません: got %s, want %s", actual, tc.want)
		}
	}
}

// TestBrowserURL はバナー表示用URLの生成をテストする
func TestBrowserURL(t *testing.T) {
	testCases := []struct {
		host string
		want string
	}{
		{"0.0.0.0", "http://localhost:8000"},
		{"", "http://localhost:8000"},
		{"::", "http://localhost:8000"},
		{"127.0.0.1", "http://127.0.0.1:8000"},
		{"::1", "http://[::1]:8000"},
		{"fe80::1", "http://[fe80::1]:8000"},
	}

	for _, tc := range testCases {
		cfg := &Config{Server: ServerConfig{Host: tc.host, Port: 8000}}
		if got := cfg.BrowserURL(); got != tc.want {
			t.Errorf("host=%q: got %s, want %s", tc.host, got, tc.want)
		}
	}
}
