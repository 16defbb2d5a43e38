package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultEntryFile はルートパスで返すエントリファイル名
const DefaultEntryFile = "index.html"

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig
	Static StaticConfig
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string // リッスンするホスト
	Port int    // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration // 読み込みタイムアウト
	WriteTimeout    time.Duration // 書き込みタイムアウト
	ShutdownTimeout time.Duration // シャットダウン待ち時間
}

// StaticConfig は静的ファイル配信の設定
// 起動時に一度だけ決定され、以後変更されない
type StaticConfig struct {
	BaseDir   string // 配信するルートディレクトリ (絶対パス)
	EntryFile string // ルートパスで返すファイル
}

// Load は設定を読み込む
// 環境変数が設定されていればそれを優先し、なければデフォルト値を使う
func Load() (*Config, error) {
	baseDir, err := resolveBaseDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsIntOrDefault("PORT", 8000),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    0, // 大きなアセットの転送を打ち切らない
			ShutdownTimeout: 5 * time.Second,
		},
		Static: StaticConfig{
			BaseDir:   baseDir,
			EntryFile: DefaultEntryFile,
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if c.Static.BaseDir == "" {
		return fmt.Errorf("ベースディレクトリが設定されていません")
	}
	if !filepath.IsAbs(c.Static.BaseDir) {
		return fmt.Errorf("ベースディレクトリは絶対パスである必要があります: %s", c.Static.BaseDir)
	}
	info, err := os.Stat(c.Static.BaseDir)
	if err != nil {
		return fmt.Errorf("ベースディレクトリにアクセスできません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ベースディレクトリがディレクトリではありません: %s", c.Static.BaseDir)
	}

	// エントリファイルはベースディレクトリ直下のファイル名のみ許可する
	if c.Static.EntryFile == "" || filepath.Base(c.Static.EntryFile) != c.Static.EntryFile {
		return fmt.Errorf("無効なエントリファイル名: %q", c.Static.EntryFile)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// BrowserURL はバナーに表示するアクセス先URLを返す
func (c *Config) BrowserURL() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// resolveBaseDir は配信ルートを決定する
// BASE_DIR が未設定なら実行ファイルのあるディレクトリを使う
func resolveBaseDir() (string, error) {
	if dir := os.Getenv("BASE_DIR"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("BASE_DIRの解決に失敗: %w", err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("実行ファイルのパス取得に失敗: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("実行ファイルのシンボリックリンク解決に失敗: %w", err)
	}
	return filepath.Dir(exe), nil
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
